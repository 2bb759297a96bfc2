// ABOUTME: Drives a station's media source on a worker and forwards its bytes
// ABOUTME: Stops at end of stream, a byte limit, an error, or cancellation
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/harper/listenmoe-ingest/internal/domain"
	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/infrastructure/metrics"
)

const defaultChunkSize = 32 * 1024

type Options struct {
	// MaxBytes stops the pump after this many bytes; zero means unlimited.
	MaxBytes  int64
	ChunkSize int
}

type Pump struct {
	source domain.StreamSource
	opts   Options
	logger *zap.Logger
}

func New(source domain.StreamSource, opts Options, logger *zap.Logger) *Pump {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = defaultChunkSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pump{source: source, opts: opts, logger: logger}
}

// Run opens st and copies its stream into dst, blocking until it ends. It
// returns the number of bytes written. A cancelled ctx closes the source,
// unblocking any pending read, and Run returns ctx.Err().
func (p *Pump) Run(ctx context.Context, st station.Station, dst io.Writer) (int64, error) {
	logger := p.logger.With(zap.String("station", st.Name()))

	ms, err := p.source.Open(ctx, st)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", st.Name(), err)
	}
	defer ms.Close()

	length, known := ms.ByteLen()
	logger.Info("stream opened",
		zap.Bool("seekable", ms.IsSeekable()),
		zap.Bool("length_known", known),
		zap.Int64("length", length),
	)

	stop := context.AfterFunc(ctx, func() { ms.Close() })
	defer stop()

	active := metrics.ActiveStreams.WithLabelValues(st.Name())
	active.Inc()
	defer active.Dec()

	bytesRead := metrics.BytesReadTotal.WithLabelValues(st.Name())

	buf := make([]byte, p.opts.ChunkSize)
	var total int64

	for {
		want := buf
		if p.opts.MaxBytes > 0 {
			remaining := p.opts.MaxBytes - total
			if remaining <= 0 {
				logger.Info("byte limit reached", zap.Int64("bytes", total))
				return total, nil
			}
			if remaining < int64(len(want)) {
				want = want[:remaining]
			}
		}

		n, readErr := ms.Read(want)
		if n > 0 {
			bytesRead.Add(float64(n))
			w, err := dst.Write(want[:n])
			total += int64(w)
			if err != nil {
				return total, fmt.Errorf("write: %w", err)
			}
			if w < n {
				return total, fmt.Errorf("write: %w", io.ErrShortWrite)
			}
		}

		if readErr == nil {
			continue
		}
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		if errors.Is(readErr, io.EOF) {
			logger.Info("stream ended", zap.Int64("bytes", total))
			return total, nil
		}

		metrics.ReadErrorsTotal.WithLabelValues(st.Name()).Inc()
		logger.Warn("stream read failed",
			zap.Stringer("kind", domain.KindOf(readErr)),
			zap.Error(readErr),
		)
		return total, readErr
	}
}
