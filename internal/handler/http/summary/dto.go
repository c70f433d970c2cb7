// Package summary provides the HTTP handlers of the TL;DR summary API.
package summary

import (
	"tldr-summary/internal/domain/entity"
	sumUC "tldr-summary/internal/usecase/summary"
)

// SummaryRequest is the body of POST /v1/summaries.
type SummaryRequest struct {
	Prompt  string `json:"prompt"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// SummaryResponse is the body of a successful summary.
type SummaryResponse struct {
	Summary  string `json:"summary"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
}

// PlatformsResponse lists the usable platforms in registry order.
type PlatformsResponse struct {
	Platforms []entity.Platform `json:"platforms"`
}

// ModelsResponse lists a platform's text-generation models.
type ModelsResponse struct {
	Platform string                   `json:"platform"`
	Models   []entity.ModelDescriptor `json:"models"`
}

// SelectionResponse shows the stored preference next to what is actually used.
type SelectionResponse struct {
	Preference entity.Preference         `json:"preference"`
	Effective  entity.EffectiveSelection `json:"effective"`
}

// ConnectionResponse is the body of POST /v1/connection-test.
type ConnectionResponse = sumUC.ConnectionResult

func toSummaryResponse(s *sumUC.Summary) SummaryResponse {
	return SummaryResponse{
		Summary:  s.HTML,
		Provider: s.Provider.String(),
		Model:    s.Model,
	}
}
