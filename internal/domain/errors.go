// ABOUTME: I/O error taxonomy shared by media sources and their consumers
// ABOUTME: Classifies failures as Other or Unsupported while keeping the cause chain
package domain

import "errors"

// ErrorKind classifies media source failures.
type ErrorKind int

const (
	// KindOther covers transport failures and anything not listed below.
	KindOther ErrorKind = iota
	// KindUnsupported marks operations the source can never perform.
	KindUnsupported
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnsupported:
		return "unsupported"
	default:
		return "other"
	}
}

// ErrClosed is returned by operations on a closed media source.
var ErrClosed = errors.New("media source closed")

// IOError is the error returned by MediaSource operations.
type IOError struct {
	Op   string
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *IOError) Error() string {
	switch {
	case e.Msg != "":
		return e.Op + ": " + e.Msg
	case e.Err != nil:
		return e.Op + ": " + e.Err.Error()
	default:
		return e.Op + ": " + e.Kind.String() + " error"
	}
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, errors.ErrUnsupported) match unsupported operations
// even when Err carries something else.
func (e *IOError) Is(target error) bool {
	return target == errors.ErrUnsupported && e.Kind == KindUnsupported
}

// KindOf reports the kind of the first IOError in err's chain.
func KindOf(err error) ErrorKind {
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return ioErr.Kind
	}
	return KindOther
}
