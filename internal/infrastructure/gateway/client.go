// ABOUTME: WebSocket client following the listen.moe now-playing gateway
// ABOUTME: Keeps the session alive with heartbeats and reconnects after failures
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/domain"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
)

type Config struct {
	ReconnectDelay   time.Duration
	HandshakeTimeout time.Duration
	UserAgent        string
}

type Client struct {
	cfg    Config
	dialer *websocket.Dialer
	logger *zap.Logger
}

var _ domain.TrackFeed = (*Client)(nil)

func New(cfg Config, logger *zap.Logger) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		cfg: cfg,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.HandshakeTimeout,
		},
		logger: logger,
	}
}

// Watch runs gateway sessions for st until ctx is cancelled, waiting
// ReconnectDelay between attempts.
func (c *Client) Watch(ctx context.Context, st station.Station, h domain.TrackHandler) error {
	return c.watch(ctx, st.WSURL(), h, c.logger.With(zap.String("station", st.Name())))
}

func (c *Client) watch(ctx context.Context, url string, h domain.TrackHandler, logger *zap.Logger) error {
	for {
		err := c.session(ctx, url, h, logger)
		if ctx.Err() != nil {
			return nil
		}

		if err != nil {
			logger.Warn("gateway connection error, retrying",
				zap.Error(err),
				zap.Duration("delay", c.cfg.ReconnectDelay),
			)
		} else {
			logger.Info("gateway closed, reconnecting", zap.Duration("delay", c.cfg.ReconnectDelay))
		}

		timer := time.NewTimer(c.cfg.ReconnectDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}

// Session runs a single gateway connection. It returns nil when the server
// closes the session or ctx is cancelled.
func (c *Client) Session(ctx context.Context, url string, h domain.TrackHandler) error {
	return c.session(ctx, url, h, c.logger)
}

func (c *Client) session(ctx context.Context, url string, h domain.TrackHandler, logger *zap.Logger) (err error) {
	header := http.Header{}
	if c.cfg.UserAgent != "" {
		header.Set("User-Agent", c.cfg.UserAgent)
	}

	conn, _, err := c.dialer.DialContext(ctx, url, header)
	if err != nil {
		return fmt.Errorf("dial gateway: %w", err)
	}
	defer conn.Close()

	// Closing the connection is the only way to unblock a pending read.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	_, data, err := conn.ReadMessage()
	if err != nil {
		if ctx.Err() != nil || isNormalClose(err) {
			return nil
		}
		return fmt.Errorf("read hello: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("parse hello: %w", err)
	}
	interval, err := heartbeatInterval(env)
	if err != nil {
		return err
	}

	logger.Info("gateway connected", zap.Duration("heartbeat", interval))
	h.OnConnect()
	defer func() { h.OnDisconnect(err) }()

	if err := conn.WriteMessage(websocket.TextMessage, heartbeatFrame); err != nil {
		return fmt.Errorf("send heartbeat: %w", err)
	}

	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	done := make(chan struct{})
	defer close(done)

	frames := make(chan []byte)
	readErr := make(chan error, 1)
	go func() {
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				readErr <- err
				return
			}
			select {
			case frames <- data:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick:
			if err := conn.WriteMessage(websocket.TextMessage, heartbeatFrame); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("send heartbeat: %w", err)
			}
		case err := <-readErr:
			if ctx.Err() != nil || isNormalClose(err) {
				return nil
			}
			return fmt.Errorf("read frame: %w", err)
		case data := <-frames:
			c.dispatch(data, h, logger)
		}
	}
}

func (c *Client) dispatch(data []byte, h domain.TrackHandler, logger *zap.Logger) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		logger.Warn("gateway json parse error", zap.Error(err))
		return
	}

	switch {
	case env.Op == opHeartbeatAck:
		logger.Debug("gateway heartbeat ack")
	case env.Op == opDispatch && env.T == eventTrackUpdate:
		info, err := parseTrack(env.D)
		if err != nil {
			logger.Warn("invalid track update", zap.Error(err))
			return
		}
		logger.Debug("track update",
			zap.String("artist", info.Artist),
			zap.String("title", info.Title),
			zap.Duration("duration", info.Duration),
		)
		h.OnTrack(info)
	}
}

func isNormalClose(err error) bool {
	return websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}
