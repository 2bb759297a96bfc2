// ABOUTME: Non-seekable media source over a live HTTP response body
// ABOUTME: Passes reads through, rejects seeks, and releases the body on close
package source

import (
	"errors"
	"io"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/harper/listenmoe-ingest/internal/domain"
)

// MediaSource adapts a streaming response body for a demuxer. It has no
// length and no meaningful offset, so decoders stay on their streaming path.
type MediaSource struct {
	body      io.ReadCloser
	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

var _ domain.MediaSource = (*MediaSource)(nil)

// NewMediaSource takes ownership of body.
func NewMediaSource(body io.ReadCloser) *MediaSource {
	return &MediaSource{body: body}
}

// FromResponse takes ownership of resp.Body.
func FromResponse(resp *http.Response) *MediaSource {
	return NewMediaSource(resp.Body)
}

// Read delegates to the body. io.EOF passes through untouched; any other
// failure is reported as a KindOther IOError wrapping the transport error.
func (m *MediaSource) Read(p []byte) (int, error) {
	if m.closed.Load() {
		return 0, &domain.IOError{Op: "read", Kind: domain.KindOther, Err: domain.ErrClosed}
	}

	n, err := m.body.Read(p)
	if err == nil || err == io.EOF {
		return n, err
	}
	if m.closed.Load() {
		err = errors.Join(domain.ErrClosed, err)
	}
	return n, &domain.IOError{Op: "read", Kind: domain.KindOther, Err: err}
}

// Seek always fails: a live stream has no position to return to.
func (m *MediaSource) Seek(offset int64, whence int) (int64, error) {
	return 0, &domain.IOError{
		Op:   "seek",
		Kind: domain.KindUnsupported,
		Msg:  "live http stream is not seekable",
		Err:  errors.ErrUnsupported,
	}
}

func (m *MediaSource) IsSeekable() bool {
	return false
}

// ByteLen is always unknown.
func (m *MediaSource) ByteLen() (int64, bool) {
	return 0, false
}

// Close releases the response body. It is idempotent and may run while a
// Read is blocked in another goroutine, which aborts that Read.
func (m *MediaSource) Close() error {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		m.closeErr = m.body.Close()
	})
	return m.closeErr
}
