// ABOUTME: Tests for the HTTP media source adapter
// ABOUTME: Covers pass-through reads, seek rejection, error wrapping, and release on close
package source

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/harper/listenmoe-ingest/internal/domain"
)

// fakeBody yields data in chunks of at most chunk bytes, fails on call
// failOn (1-based) when set, and records Close.
type fakeBody struct {
	data   []byte
	chunk  int
	failOn int
	err    error
	calls  int
	closed int
}

func (f *fakeBody) Read(p []byte) (int, error) {
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}
	n := len(p)
	if f.chunk > 0 && n > f.chunk {
		n = f.chunk
	}
	n = copy(p[:n], f.data)
	f.data = f.data[n:]
	return n, nil
}

func (f *fakeBody) Close() error {
	f.closed++
	return nil
}

func TestMediaSource_ReadOggMagic(t *testing.T) {
	magic := []byte{0x4F, 0x67, 0x67, 0x53}
	ms := NewMediaSource(&fakeBody{data: append([]byte(nil), magic...)})
	defer ms.Close()

	buf := make([]byte, 4)
	n, err := ms.Read(buf)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if n != 4 || !bytes.Equal(buf, magic) {
		t.Errorf("expected %v, got %v (n=%d)", magic, buf, n)
	}
}

func TestMediaSource_PassThroughUntilEOF(t *testing.T) {
	want := []byte("0123456789abcdef")
	ms := NewMediaSource(&fakeBody{data: append([]byte(nil), want...), chunk: 3})
	defer ms.Close()

	var got []byte
	buf := make([]byte, 8)
	for {
		n, err := ms.Read(buf)
		got = append(got, buf[:n]...)
		if err == io.EOF {
			if n != 0 {
				t.Errorf("EOF read should return 0 bytes, got %d", n)
			}
			break
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n == 0 {
			t.Fatal("partial reads must not return 0 without EOF")
		}
	}

	if !bytes.Equal(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestMediaSource_ReadAll(t *testing.T) {
	ms := NewMediaSource(&fakeBody{data: []byte("vorbis"), chunk: 2})
	defer ms.Close()

	got, err := io.ReadAll(ms)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if string(got) != "vorbis" {
		t.Errorf("expected vorbis, got %q", got)
	}
}

func TestMediaSource_SeekRejected(t *testing.T) {
	ms := NewMediaSource(&fakeBody{data: []byte{0xAA, 0xBB}})
	defer ms.Close()

	for _, whence := range []int{io.SeekStart, io.SeekCurrent, io.SeekEnd} {
		pos, err := ms.Seek(0, whence)
		if err == nil {
			t.Fatalf("Seek(0, %d) should fail", whence)
		}
		if pos != 0 {
			t.Errorf("Seek should report position 0, got %d", pos)
		}
		if domain.KindOf(err) != domain.KindUnsupported {
			t.Errorf("expected KindUnsupported, got %v", domain.KindOf(err))
		}
		if !errors.Is(err, errors.ErrUnsupported) {
			t.Errorf("expected errors.ErrUnsupported in chain, got %v", err)
		}
	}

	buf := make([]byte, 2)
	n, err := ms.Read(buf)
	if err != nil {
		t.Fatalf("Read after Seek failed: %v", err)
	}
	if n != 2 || buf[0] != 0xAA || buf[1] != 0xBB {
		t.Errorf("expected [0xAA 0xBB], got %v", buf[:n])
	}
}

func TestMediaSource_TransportErrorWrapped(t *testing.T) {
	transportErr := errors.New("connection reset by peer")
	data := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	ms := NewMediaSource(&fakeBody{data: append([]byte(nil), data...), failOn: 2, err: transportErr})
	defer ms.Close()

	buf := make([]byte, 8)
	n, err := ms.Read(buf)
	if err != nil {
		t.Fatalf("first Read failed: %v", err)
	}
	if n != 8 || !bytes.Equal(buf, data) {
		t.Errorf("expected %v, got %v", data, buf[:n])
	}

	_, err = ms.Read(buf)
	if err == nil {
		t.Fatal("second Read should fail")
	}
	if domain.KindOf(err) != domain.KindOther {
		t.Errorf("expected KindOther, got %v", domain.KindOf(err))
	}
	if !errors.Is(err, transportErr) {
		t.Errorf("transport error should stay in the chain, got %v", err)
	}
	var ioErr *domain.IOError
	if !errors.As(err, &ioErr) || ioErr.Op != "read" {
		t.Errorf("expected read IOError, got %#v", err)
	}
}

func TestMediaSource_SeekabilityConstant(t *testing.T) {
	ms := NewMediaSource(&fakeBody{data: bytes.Repeat([]byte{0x01}, 64), chunk: 16})
	defer ms.Close()

	check := func(stage string) {
		t.Helper()
		if ms.IsSeekable() {
			t.Errorf("%s: IsSeekable should be false", stage)
		}
		if n, ok := ms.ByteLen(); ok || n != 0 {
			t.Errorf("%s: ByteLen should be unknown, got (%d, %v)", stage, n, ok)
		}
	}

	check("fresh")
	buf := make([]byte, 16)
	for i := 0; i < 3; i++ {
		if _, err := ms.Read(buf); err != nil {
			t.Fatalf("Read %d failed: %v", i, err)
		}
	}
	check("after reads")
}

func TestMediaSource_CloseReleasesBody(t *testing.T) {
	body := &fakeBody{data: []byte("abc")}
	ms := NewMediaSource(body)

	if err := ms.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := ms.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
	if body.closed != 1 {
		t.Errorf("body should be closed exactly once, got %d", body.closed)
	}

	_, err := ms.Read(make([]byte, 1))
	if !errors.Is(err, domain.ErrClosed) {
		t.Errorf("Read after Close should report ErrClosed, got %v", err)
	}
	if body.calls != 0 {
		t.Errorf("closed source must not touch the body, got %d reads", body.calls)
	}
}

func TestMediaSource_ImplementsContract(t *testing.T) {
	var ms domain.MediaSource = NewMediaSource(io.NopCloser(bytes.NewReader(nil)))
	defer ms.Close()

	if ms.IsSeekable() {
		t.Error("http media source must not be seekable")
	}
}
