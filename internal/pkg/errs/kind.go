package errs

import "errors"

// Kind classifies an error into the failure taxonomy exposed to callers.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindPrecondition
	KindConflict
	KindNotFound
	KindStoreUnavailable
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "Validation"
	case KindPrecondition:
		return "Precondition"
	case KindConflict:
		return "Conflict"
	case KindNotFound:
		return "NotFound"
	case KindStoreUnavailable:
		return "StoreUnavailable"
	default:
		return "Unknown"
	}
}

// KindOf walks the error chain and returns the first matching kind.
// Store failures win over everything else so that a wrapped driver error is
// never reported as a business failure.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrStoreUnavailable):
		return KindStoreUnavailable
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrPreconditionFailed):
		return KindPrecondition
	case errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsOutOfRange),
		errors.Is(err, ErrVersionIsInvalid):
		return KindValidation
	default:
		return KindUnknown
	}
}

// IsRetryable reports whether a read may be attempted again.
func IsRetryable(err error) bool {
	return KindOf(err) == KindStoreUnavailable
}
