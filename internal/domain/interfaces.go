// ABOUTME: Domain interfaces for dependency inversion
// ABOUTME: Media sources for decoders, stream openers, and the now-playing feed
package domain

import (
	"context"
	"io"

	"github.com/harper/listenmoe-ingest/internal/domain/station"
	"github.com/harper/listenmoe-ingest/internal/domain/track"
)

// MediaSource is the byte input a demuxer pulls from. Consumers must check
// IsSeekable before calling Seek. ByteLen reports false when the length is
// unknown. Reads are serial; Close may be called from another goroutine to
// abort a blocked Read.
type MediaSource interface {
	io.Reader
	io.Seeker
	io.Closer
	IsSeekable() bool
	ByteLen() (int64, bool)
}

// StreamSource opens the audio stream of a station.
type StreamSource interface {
	Open(ctx context.Context, st station.Station) (MediaSource, error)
}

// TrackHandler receives gateway events for one station.
type TrackHandler interface {
	OnConnect()
	OnTrack(info track.Info)
	OnDisconnect(err error)
}

// TrackFeed follows now-playing updates until ctx is cancelled.
type TrackFeed interface {
	Watch(ctx context.Context, st station.Station, h TrackHandler) error
}
