// Package respond writes JSON responses and error bodies. Error details that
// may carry credentials are masked before they are logged.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"tldr-summary/internal/handler/http/requestid"
	"tldr-summary/internal/observability/logging"
)

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// JSON writes a JSON response with the given status code and data.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Headers are already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// Error writes an ErrorBody. kind is a stable machine-readable code and
// message is shown to the caller as-is.
func Error(w http.ResponseWriter, r *http.Request, code int, kind, message string) {
	JSON(w, code, ErrorBody{
		Error:     kind,
		Message:   message,
		RequestID: requestid.FromContext(r.Context()),
	})
}

// Internal logs err with secrets masked and writes a generic 500 body.
func Internal(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error("internal server error",
		slog.String("path", r.URL.Path),
		slog.String("error", SanitizeError(err)))
	Error(w, r, http.StatusInternalServerError, "internal", "internal server error")
}
