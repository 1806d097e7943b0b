package rules

import "fmt"

// ErrorKind is the closed set of rule violations the engine can report.
type ErrorKind string

const (
	KindResourceNotFound ErrorKind = "RESOURCE_NOT_FOUND"
	KindNotParticipant   ErrorKind = "NOT_PARTICIPANT"
	KindMatchStatus      ErrorKind = "MATCH_STATUS"
	KindInvalidScore     ErrorKind = "INVALID_SCORE"
	KindPrediction       ErrorKind = "PREDICTION"
	KindMatchUpdate      ErrorKind = "MATCH_UPDATE"
	KindUnauthorized     ErrorKind = "UNAUTHORIZED"
	KindConflict         ErrorKind = "CONFLICT"
	KindValidation       ErrorKind = "VALIDATION"
)

// Error is a deterministic, non-retryable rule violation.
type Error struct {
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return e.Detail
}

// Is matches any *Error of the same kind when the target carries no detail,
// so errors.Is(err, ErrPrediction) works for every prediction violation.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Detail == "" {
		return e.Kind == t.Kind
	}
	return e.Kind == t.Kind && e.Detail == t.Detail
}

var (
	ErrResourceNotFound = &Error{Kind: KindResourceNotFound}
	ErrNotParticipant   = &Error{Kind: KindNotParticipant}
	ErrMatchStatus      = &Error{Kind: KindMatchStatus}
	ErrInvalidScore     = &Error{Kind: KindInvalidScore}
	ErrPrediction       = &Error{Kind: KindPrediction}
	ErrMatchUpdate      = &Error{Kind: KindMatchUpdate}
	ErrUnauthorized     = &Error{Kind: KindUnauthorized}
	ErrConflict         = &Error{Kind: KindConflict}
	ErrValidation       = &Error{Kind: KindValidation}

	ErrPredictionExists = &Error{Kind: KindPrediction, Detail: "prediction already exists"}
)

func newError(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Detail: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing resource, e.g. NotFound("pool") reads "pool not found".
func NotFound(resource string) *Error {
	return newError(KindResourceNotFound, "%s not found", resource)
}

func matchUpdateErr(format string, args ...any) *Error {
	return newError(KindMatchUpdate, format, args...)
}

func predictionErr(format string, args ...any) *Error {
	return newError(KindPrediction, format, args...)
}
