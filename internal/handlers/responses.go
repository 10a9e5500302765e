package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/execution"
	"nodeBoard/internal/models"
	"nodeBoard/internal/msgs"

	"github.com/gin-gonic/gin"
)

// statusForError maps service errors to HTTP status codes. Unknown errors
// are internal; any other errs.Error is the caller's fault.
func statusForError(err error) int {
	switch {
	case errors.Is(err, errs.ErrWhiteboardNotFound),
		errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrNodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrUnauthorized),
		errors.Is(err, errs.ErrInvalidToken),
		errors.Is(err, errs.ErrWrongPassword):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrInsufficientCredits):
		return http.StatusPaymentRequired
	case errors.Is(err, errs.ErrExecutionInProgress),
		errors.Is(err, errs.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTooManyRequests):
		return http.StatusTooManyRequests
	case errors.Is(err, errs.ErrPaymentsNotConfigured),
		errors.Is(err, errs.ErrProviderNotConfigured):
		return http.StatusServiceUnavailable
	case execution.IsStepsExceededError(err):
		return http.StatusUnprocessableEntity
	}
	var domainErr errs.Error
	if errors.As(err, &domainErr) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// abortWithErrors replies with the status of the first error. Internal
// errors are logged and replaced so details do not leak to clients.
func abortWithErrors(ctx *gin.Context, errors ...error) {
	status := http.StatusInternalServerError
	if len(errors) > 0 {
		status = statusForError(errors[0])
	}
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "method", ctx.Request.Method, "path", ctx.FullPath(), "errors", errors)
		errors = []error{errs.Error(msgs.MsgOperationFailed)}
	}
	ctx.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Message: msgs.MsgOperationFailed,
		Errors:  errors,
	})
}

func abortWithStatus(ctx *gin.Context, status int, message string, err error) {
	ctx.AbortWithStatusJSON(status, models.Response{
		Success: false,
		Message: message,
		Errors:  []error{err},
	})
}

func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}
