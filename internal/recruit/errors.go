package recruit

import (
	"errors"
	"net/http"
)

// Kind classifies a domain failure. Each kind maps to one HTTP status.
type Kind int

const (
	KindInvalidID Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindValidation
	KindJobMismatch
	KindCandidateJobMismatch
	KindInputEmpty
	KindRelationshipConflict
	KindInvalidStatusTransition
	KindInvalidStatus
	KindDuplicateEmail
	KindDuplicateResult
	KindDuplicateJobCode
)

func (k Kind) String() string {
	switch k {
	case KindInvalidID:
		return "InvalidId"
	case KindNotFound:
		return "NotFound"
	case KindUnauthorized:
		return "Unauthorized"
	case KindValidation:
		return "ValidationError"
	case KindJobMismatch:
		return "JobMismatch"
	case KindCandidateJobMismatch:
		return "CandidateJobMismatch"
	case KindInputEmpty:
		return "InputEmpty"
	case KindRelationshipConflict:
		return "RelationshipConflict"
	case KindInvalidStatusTransition:
		return "InvalidStatusTransition"
	case KindInvalidStatus:
		return "InvalidStatus"
	case KindDuplicateEmail:
		return "DuplicateEmail"
	case KindDuplicateResult:
		return "DuplicateScreeningResult"
	case KindDuplicateJobCode:
		return "DuplicateJobCode"
	default:
		return "Unknown"
	}
}

// HTTPStatus returns the status code a boundary should answer with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindInvalidID, KindValidation, KindInputEmpty, KindInvalidStatus:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindJobMismatch, KindCandidateJobMismatch, KindRelationshipConflict,
		KindInvalidStatusTransition, KindDuplicateEmail, KindDuplicateResult, KindDuplicateJobCode:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain failure carrying a stable machine-readable code.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) HTTPStatus() int {
	return e.Kind.HTTPStatus()
}

// Is matches sentinels by Kind so callers can write errors.Is(err, recruit.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Code == "" || t.Code == e.Code)
}

// Sentinels for errors.Is matching. They carry no code.
var (
	ErrInvalidID               = &Error{Kind: KindInvalidID, Message: "invalid id"}
	ErrNotFound                = &Error{Kind: KindNotFound, Message: "not found"}
	ErrUnauthorized            = &Error{Kind: KindUnauthorized, Message: "unauthorized"}
	ErrValidation              = &Error{Kind: KindValidation, Message: "validation failed"}
	ErrJobMismatch             = &Error{Kind: KindJobMismatch, Message: "job mismatch"}
	ErrCandidateJobMismatch    = &Error{Kind: KindCandidateJobMismatch, Message: "candidate job mismatch"}
	ErrInputEmpty              = &Error{Kind: KindInputEmpty, Message: "screening input empty"}
	ErrRelationshipConflict    = &Error{Kind: KindRelationshipConflict, Message: "relationship conflict"}
	ErrInvalidStatusTransition = &Error{Kind: KindInvalidStatusTransition, Message: "invalid status transition"}
	ErrInvalidStatus           = &Error{Kind: KindInvalidStatus, Message: "invalid status"}
	ErrDuplicateEmail          = &Error{Kind: KindDuplicateEmail, Message: "duplicate email"}
	ErrDuplicateResult         = &Error{Kind: KindDuplicateResult, Message: "duplicate screening result"}
	ErrDuplicateJobCode        = &Error{Kind: KindDuplicateJobCode, Message: "duplicate job code"}
)

func newError(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func unauthorized() *Error {
	return newError(KindUnauthorized, "UNAUTHORIZED", "Unauthorized")
}

func validationError(message string) *Error {
	return newError(KindValidation, "VALIDATION_ERROR", message)
}

func invalidStatus(message string) *Error {
	return newError(KindInvalidStatus, "INVALID_STATUS", message)
}

// AsError extracts the domain error from err, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
