package errors

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Map converts repo/infra errors into AppErrors.
// Keeps service layer clean by centralizing error mapping.
func Map(err error) error {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(CodeNotFound, "record not found", err)

	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(CodeAlreadyExists, "record already exists", err)

	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(CodeDeadlineExceeded, "request timed out", err)

	case errors.Is(err, context.Canceled):
		return Wrap(CodeCanceled, "request was canceled", err)

	default:
		return Wrap(CodeInternal, "internal server error", err)
	}
}

// CodeOf extracts the classification of any error. Unclassified errors
// count as internal.
func CodeOf(err error) Code {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeInternal
}

// HTTPStatus maps an error code to the HTTP status the handlers respond with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeAlreadyExists:
		return http.StatusConflict
	case CodeDeadlineExceeded:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
