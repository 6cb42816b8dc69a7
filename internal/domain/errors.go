package domain

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so callers can decide whether to retry,
// abort or surface the error to the end user.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindAlreadyExists
	KindInvalidArgument
	KindCurrencyMismatch
	KindStateConflict
	KindAuthorizationFailed
	KindAccessDenied
	KindInvalidBadge
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindAlreadyExists:
		return "ALREADY_EXISTS"
	case KindInvalidArgument:
		return "INVALID_ARGUMENT"
	case KindCurrencyMismatch:
		return "CURRENCY_MISMATCH"
	case KindStateConflict:
		return "STATE_CONFLICT"
	case KindAuthorizationFailed:
		return "AUTHORIZATION_FAILED"
	case KindAccessDenied:
		return "ACCESS_DENIED"
	case KindInvalidBadge:
		return "INVALID_BADGE"
	default:
		return "UNKNOWN"
	}
}

// Error is the typed failure returned by entities and services.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is reports a match when target has the same kind and either carries no
// message (a kind sentinel) or the same message (a named condition).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Kind != e.Kind {
		return false
	}
	return t.Message == "" || t.Message == e.Message
}

// Kind sentinels, matching any error of that kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrAlreadyExists       = &Error{Kind: KindAlreadyExists}
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrStateConflict       = &Error{Kind: KindStateConflict}
	ErrAuthorizationFailed = &Error{Kind: KindAuthorizationFailed}
)

// Named conditions.
var (
	ErrCurrencyMismatch   = &Error{Kind: KindCurrencyMismatch, Message: "currency mismatch"}
	ErrNotConfirmable     = &Error{Kind: KindStateConflict, Message: "only newly created bookings can be confirmed"}
	ErrAlreadyFinalized   = &Error{Kind: KindStateConflict, Message: "booking already finalized"}
	ErrAlreadyPaid        = &Error{Kind: KindStateConflict, Message: "cannot pay for finalized booking"}
	ErrAlreadyDeparted    = &Error{Kind: KindStateConflict, Message: "cannot change status of departed flight"}
	ErrSeatUnavailable    = &Error{Kind: KindStateConflict, Message: "seat already reserved"}
	ErrGateOccupied       = &Error{Kind: KindStateConflict, Message: "gate is not free"}
	ErrPaymentDeclined    = &Error{Kind: KindAuthorizationFailed, Message: "card authorization failed"}
	ErrNotRefundable      = &Error{Kind: KindAuthorizationFailed, Message: "only completed payments can be refunded"}
	ErrInsufficientFunds  = &Error{Kind: KindInvalidArgument, Message: "amount must be positive"}
	ErrOverweight         = &Error{Kind: KindInvalidArgument, Message: "baggage overweight"}
	ErrInsufficientPoints = &Error{Kind: KindInvalidArgument, Message: "not enough points"}
	ErrNegativePoints     = &Error{Kind: KindInvalidArgument, Message: "points amount must be positive"}
	ErrAccessDenied       = &Error{Kind: KindAccessDenied, Message: "access denied"}
	ErrInvalidBadge       = &Error{Kind: KindInvalidBadge, Message: "badge has no id"}
)

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func AlreadyExistsf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindAlreadyExists, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgumentf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// KindOf returns the kind of the first domain error in err's chain.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnknown
}
