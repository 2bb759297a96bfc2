// ABOUTME: Feed manager for lifecycle and lookup
// ABOUTME: Creates feeds from config and manages their gateway goroutines
package manager

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/application/config"
	"github.com/harper/listenmoe-ingest/internal/domain"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
)

type Manager struct {
	feeds  map[station.Station]*Feed
	order  []station.Station
	source domain.TrackFeed
	logger *zap.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFromConfig(cfg *config.Config, source domain.TrackFeed, logger *zap.Logger) (*Manager, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	stations, err := cfg.StationList()
	if err != nil {
		return nil, err
	}

	mgr := &Manager{
		feeds:  make(map[station.Station]*Feed, len(stations)),
		order:  stations,
		source: source,
		logger: logger,
	}

	for _, st := range stations {
		mgr.feeds[st] = NewFeed(st, cfg.Gateway.HistorySize, logger)
	}

	return mgr, nil
}

// Get looks a feed up by station name; nil when unknown or not configured.
func (m *Manager) Get(name string) *Feed {
	st, err := station.Parse(name)
	if err != nil {
		return nil
	}
	return m.feeds[st]
}

// List returns feeds in catalog order.
func (m *Manager) List() []*Feed {
	result := make([]*Feed, 0, len(m.order))
	for _, st := range m.order {
		result = append(result, m.feeds[st])
	}
	return result
}

// Start launches one gateway watcher per feed. The watchers stop when ctx
// is cancelled or Shutdown is called.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cancel != nil {
		return nil
	}

	ctx, m.cancel = context.WithCancel(ctx)

	for _, feed := range m.List() {
		m.wg.Add(1)
		go func(f *Feed) {
			defer m.wg.Done()
			if err := m.source.Watch(ctx, f.Station(), f); err != nil {
				m.logger.Error("gateway watcher stopped",
					zap.String("station", f.Station().Name()),
					zap.Error(err),
				)
			}
		}(feed)
	}

	return nil
}

// Shutdown stops every watcher and waits for them to return.
func (m *Manager) Shutdown() error {
	m.mu.Lock()
	cancel := m.cancel
	m.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	m.wg.Wait()

	return nil
}
