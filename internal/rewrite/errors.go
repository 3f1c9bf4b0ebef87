package rewrite

import "errors"

// Kind classifies a rewrite failure.
type Kind int

// Kind values. Every failure is scoped to one request and is not retried.
const (
	KindUnsupportedStatement Kind = iota + 1
	KindJoinsNotAllowed
	KindMalformedQuery
	KindGeostoreNotFound
	KindGeostoreFetchError
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedStatement:
		return "UnsupportedStatement"
	case KindJoinsNotAllowed:
		return "JoinsNotAllowed"
	case KindMalformedQuery:
		return "MalformedQuery"
	case KindGeostoreNotFound:
		return "GeostoreNotFound"
	case KindGeostoreFetchError:
		return "GeostoreFetchError"
	default:
		return "Unknown"
	}
}

// Messages reported for failures whose cause carries no client-facing text.
const (
	msgMalformedQuery     = "Malformed query"
	msgGeostoreNotFound   = "Geostore not found"
	msgGeostoreFetchError = "Error obtaining geostore"
)

// Error is the failure value returned by Service.Rewrite.
type Error struct {
	Kind    Kind
	Message string
	err     error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.err
}

// newError builds an *Error. It has no side effects; callers log.
func newError(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, err: cause}
}

// KindOf returns the Kind of err if it is, or wraps, an *Error.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}
