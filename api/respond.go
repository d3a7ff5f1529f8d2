package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vainnor/training-records/db"
)

// Error codes carried in the "code" field of error responses.
const (
	codeValidationFailed  = "validation_failed"
	codeInvalidReference  = "invalid_reference"
	codeConflict          = "conflict"
	codeNotFound          = "not_found"
	codePersistenceFailed = "persistence_failed"
	codeRateLimited       = "rate_limited"
)

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		LoggerFromContext(ctx).ErrorContext(ctx, "failed to encode response", "error", err)
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	resp := ErrorResponse{Error: message, Code: code}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(ctx, w, status, resp)
}

// writeStoreError maps store errors onto status codes. message is the
// user-facing summary of the failed operation.
func writeStoreError(ctx context.Context, w http.ResponseWriter, message string, err error) {
	logger := LoggerFromContext(ctx)

	switch {
	case errors.Is(err, db.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, codeNotFound, "Training session not found", nil)
	case errors.Is(err, db.ErrInvalidReference):
		logger.WarnContext(ctx, message, "error", err)
		writeError(ctx, w, http.StatusUnprocessableEntity, codeInvalidReference, message, err)
	case errors.Is(err, db.ErrConflict):
		logger.WarnContext(ctx, message, "error", err)
		writeError(ctx, w, http.StatusConflict, codeConflict, message, err)
	default:
		logger.ErrorContext(ctx, message, "error", err)
		writeError(ctx, w, http.StatusInternalServerError, codePersistenceFailed, message, err)
	}
}
