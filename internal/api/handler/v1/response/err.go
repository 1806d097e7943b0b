package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vietanh2810/pronos-api/internal/rules"
)

// Err is the body of every error response.
type Err struct {
	HTTPStatusCode int    `json:"-"`
	Code           string `json:"code"`
	Message        string `json:"message"`
	// Cause is logged for 5xx responses and never sent to the client.
	Cause error `json:"-"`
}

func (e *Err) Error() string {
	return e.Message
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.HTTPStatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("request_id", requestid.Get(ctx)),
			zap.String("path", ctx.FullPath()),
			zap.Error(e.Cause),
		)
	}

	ctx.AbortWithStatusJSON(e.HTTPStatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{HTTPStatusCode: http.StatusBadRequest, Code: "BAD_REQUEST", Message: err.Error()}
}

func ErrWrongCredentials(_ error) *Err {
	return &Err{HTTPStatusCode: http.StatusUnauthorized, Code: "WRONG_CREDENTIALS", Message: "email or password is incorrect"}
}

func ErrInvalidToken(_ error) *Err {
	return &Err{HTTPStatusCode: http.StatusUnauthorized, Code: "INVALID_TOKEN", Message: "missing or invalid token"}
}

func ErrPermissionDenied(err error) *Err {
	return &Err{HTTPStatusCode: http.StatusForbidden, Code: "PERMISSION_DENIED", Message: err.Error()}
}

func ErrNotFound(resource, field string, value any) *Err {
	return &Err{
		HTTPStatusCode: http.StatusNotFound,
		Code:           "RESOURCE_NOT_FOUND",
		Message:        fmt.Sprintf("%s with %s %v not found", resource, field, value),
	}
}

func ErrConflict(err error) *Err {
	return &Err{HTTPStatusCode: http.StatusConflict, Code: "CONFLICT", Message: err.Error()}
}

func ErrTooManyRequests() *Err {
	return &Err{HTTPStatusCode: http.StatusTooManyRequests, Code: "TOO_MANY_REQUESTS", Message: "too many requests, slow down"}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		HTTPStatusCode: http.StatusInternalServerError,
		Code:           "INTERNAL_SERVER_ERROR",
		Message:        "internal server error",
		Cause:          err,
	}
}

// FromError renders a rule violation with its status and anything else as a 500 whose cause is
// prefixed with op.
func FromError(op string, err error) *Err {
	var ruleErr *rules.Error
	if !errors.As(err, &ruleErr) {
		return ErrInternalServerError(fmt.Errorf("%s -> %w", op, err))
	}

	return &Err{
		HTTPStatusCode: ruleStatus(ruleErr),
		Code:           string(ruleErr.Kind),
		Message:        ruleErr.Error(),
	}
}

func ruleStatus(e *rules.Error) int {
	switch e.Kind {
	case rules.KindResourceNotFound:
		return http.StatusNotFound
	case rules.KindNotParticipant, rules.KindUnauthorized:
		return http.StatusForbidden
	case rules.KindMatchStatus, rules.KindConflict:
		return http.StatusConflict
	case rules.KindPrediction:
		if errors.Is(e, rules.ErrPredictionExists) {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case rules.KindInvalidScore, rules.KindMatchUpdate, rules.KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
