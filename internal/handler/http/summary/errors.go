package summary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"tldr-summary/internal/handler/http/respond"
	"tldr-summary/internal/observability/logging"
	sumUC "tldr-summary/internal/usecase/summary"
)

type errorMapping struct {
	status  int
	message string
}

var kindMappings = map[sumUC.ErrorKind]errorMapping{
	sumUC.KindNoProvider:       {http.StatusServiceUnavailable, "No AI platform is selected or available."},
	sumUC.KindNoModel:          {http.StatusServiceUnavailable, "The selected AI platform has no text-generation model available."},
	sumUC.KindEmptyResponse:    {http.StatusBadGateway, "AI service returned an empty response."},
	sumUC.KindInvocationFailed: {http.StatusBadGateway, "AI service request failed."},
	sumUC.KindContentMissing:   {http.StatusUnprocessableEntity, "Article content could not be retrieved."},
}

// writeError maps a pipeline error onto a status code and a user-facing message.
// Provider error details are logged, never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	kind := sumUC.KindOf(err)

	switch {
	case kind == sumUC.KindInvalidRequest:
		respond.Error(w, r, http.StatusBadRequest, string(kind), err.Error())
		return
	case errors.Is(err, context.DeadlineExceeded):
		respond.Error(w, r, http.StatusGatewayTimeout, "timeout", "The summary took too long to generate.")
		return
	}

	m, ok := kindMappings[kind]
	if !ok {
		respond.Internal(w, r, err)
		return
	}

	logging.FromContext(r.Context()).WarnContext(r.Context(), "summary request failed",
		slog.String("kind", string(kind)),
		slog.String("error", respond.SanitizeError(err)))
	respond.Error(w, r, m.status, string(kind), m.message)
}
