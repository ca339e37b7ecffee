package scoring

import (
	"errors"
	"fmt"
)

// Kind classifies failures surfaced to callers
type Kind int

const (
	// KindNotFound means no candidate words exist or an id does not resolve
	KindNotFound Kind = iota + 1
	// KindInvalidInput means a required request field is missing or malformed
	KindInvalidInput
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindInvalidInput:
		return "invalid input"
	default:
		return "unknown"
	}
}

var (
	// ErrNotFound matches every error of KindNotFound via errors.Is
	ErrNotFound = &Error{Kind: KindNotFound, msg: "not found"}
	// ErrInvalidInput matches every error of KindInvalidInput via errors.Is
	ErrInvalidInput = &Error{Kind: KindInvalidInput, msg: "invalid input"}
)

// Error is a classified failure
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error of the same kind
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// NotFound builds a KindNotFound error with a formatted message
func NotFound(format string, args ...interface{}) error {
	return &Error{Kind: KindNotFound, msg: fmt.Sprintf(format, args...)}
}

// InvalidInput builds a KindInvalidInput error with a formatted message
func InvalidInput(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidInput, msg: fmt.Sprintf(format, args...)}
}

// WrapNotFound classifies err as KindNotFound, keeping it in the chain
func WrapNotFound(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: KindNotFound, msg: fmt.Sprintf(format, args...), err: err}
}

// KindOf returns the kind of the first classified error in err's chain, or 0
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}
