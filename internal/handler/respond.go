package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	svcErr "github.com/eventa/match-service/internal/errors"
	"github.com/eventa/match-service/internal/logger"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error onto its HTTP status. Client errors carry their
// message; server errors are logged in full and answered with a generic body.
func writeError(w http.ResponseWriter, err error) {
	status := svcErr.HTTPStatus(err)

	msg := "internal server error"
	var appErr *svcErr.AppError
	if errors.As(err, &appErr) && status < http.StatusInternalServerError {
		msg = appErr.Message
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err)
	}

	writeJSON(w, status, map[string]string{"error": msg})
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return svcErr.Wrap(svcErr.CodeInvalidArgument, "invalid JSON body", err)
	}
	return nil
}
