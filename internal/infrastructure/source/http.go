// ABOUTME: HTTP stream opener for listen.moe Ogg streams
// ABOUTME: Handles upstream connection with timeouts and proper headers
package source

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/domain"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/metrics"
)

// Version is stamped into the default User-Agent.
var Version = "0.1.0"

type HTTPConfig struct {
	UserAgent             string
	ConnectTimeout        time.Duration
	ResponseHeaderTimeout time.Duration
	Headers               map[string]string
}

// StatusError reports a non-200 upstream response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status from %s: %d", e.URL, e.StatusCode)
}

type HTTPSource struct {
	cfg    HTTPConfig
	client *http.Client
	logger *zap.Logger
}

var _ domain.StreamSource = (*HTTPSource)(nil)

// DefaultUserAgent follows the name-vVERSION-platform convention.
func DefaultUserAgent() string {
	platform := runtime.GOOS
	if platform != "linux" && platform != "windows" {
		platform = "other"
	}
	return fmt.Sprintf("listenmoe-ingest-v%s-%s", Version, platform)
}

func NewHTTP(cfg HTTPConfig, logger *zap.Logger) *HTTPSource {
	if logger == nil {
		logger = zap.NewNop()
	}

	dialer := &net.Dialer{
		Timeout:   cfg.ConnectTimeout,
		KeepAlive: 30 * time.Second,
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ResponseHeaderTimeout,
		DisableCompression:    true,
		ExpectContinueTimeout: 1 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   0, // No total timeout for streaming
	}

	return &HTTPSource{
		cfg:    cfg,
		client: client,
		logger: logger,
	}
}

// Open connects to the station's stream endpoint.
func (h *HTTPSource) Open(ctx context.Context, st station.Station) (domain.MediaSource, error) {
	ms, err := h.OpenURL(ctx, st.StreamURL())
	if err != nil {
		return nil, err
	}
	metrics.StreamsOpenedTotal.WithLabelValues(st.Name()).Inc()
	return ms, nil
}

// OpenURL performs the GET and wraps a 200 response. The caller owns the
// returned source and must close it.
func (h *HTTPSource) OpenURL(ctx context.Context, url string) (*MediaSource, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	ua := h.cfg.UserAgent
	if ua == "" {
		ua = DefaultUserAgent()
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Icy-MetaData", "0")

	for k, v := range h.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	h.logger.Debug("stream response",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", resp.Header.Get("Content-Type")),
	)

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	return FromResponse(resp), nil
}
