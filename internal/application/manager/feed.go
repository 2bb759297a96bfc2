// ABOUTME: Per-station now-playing state fed by the metadata gateway
// ABOUTME: Tracks current song, update time, gateway health, and recent history
package manager

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/domain"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/domain/track"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/metrics"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/ring"
)

type Feed struct {
	station station.Station

	current        atomic.Pointer[track.Info]
	lastUpdateAt   atomic.Pointer[time.Time]
	gatewayHealthy atomic.Bool

	history *ring.Buffer[track.Info]
	logger  *zap.Logger
}

var _ domain.TrackHandler = (*Feed)(nil)

func NewFeed(st station.Station, historySize int, logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		station: st,
		history: ring.New[track.Info](historySize),
		logger:  logger.With(zap.String("station", st.Name())),
	}
}

func (f *Feed) Station() station.Station {
	return f.station
}

// Current returns the most recently announced track.
func (f *Feed) Current() (track.Info, bool) {
	p := f.current.Load()
	if p == nil {
		return track.Info{}, false
	}
	return *p, true
}

func (f *Feed) LastUpdate() *time.Time {
	return f.lastUpdateAt.Load()
}

func (f *Feed) GatewayHealthy() bool {
	return f.gatewayHealthy.Load()
}

// History returns announced tracks, oldest first.
func (f *Feed) History() []track.Info {
	return f.history.Snapshot()
}

// PlayingAt picks the track audible at t, for listeners whose playback
// lags behind the live edge.
func (f *Feed) PlayingAt(t time.Time) (track.Info, bool) {
	return track.Pick(f.history.Snapshot(), t)
}

func (f *Feed) OnConnect() {
	f.gatewayHealthy.Store(true)
	metrics.GatewayConnectsTotal.WithLabelValues(f.station.Name()).Inc()
	metrics.GatewayConnected.WithLabelValues(f.station.Name()).Set(1)
}

func (f *Feed) OnTrack(info track.Info) {
	f.history.Push(info)
	f.current.Store(&info)
	now := time.Now()
	f.lastUpdateAt.Store(&now)

	metrics.GatewayTrackUpdatesTotal.WithLabelValues(f.station.Name()).Inc()
	f.logger.Info("now playing", zap.String("title", info.StreamTitle()))
}

func (f *Feed) OnDisconnect(err error) {
	f.gatewayHealthy.Store(false)
	metrics.GatewayConnected.WithLabelValues(f.station.Name()).Set(0)
	if err != nil {
		f.logger.Debug("gateway session ended", zap.Error(err))
	}
}
