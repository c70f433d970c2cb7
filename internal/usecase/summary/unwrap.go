package summary

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"

	"tldr-summary/internal/domain/entity"
)

// candidatePaths are tried in order against JSON-shaped raw results.
var candidatePaths = []string{
	"candidates.0.content.parts.0.text",
	"0.content.parts.0.text",
}

// Unwrapper extracts plain text from a provider's raw generation result.
type Unwrapper struct {
	helper CandidateTextHelper
}

// NewUnwrapper creates an Unwrapper. The helper may be nil.
func NewUnwrapper(helper CandidateTextHelper) *Unwrapper {
	return &Unwrapper{helper: helper}
}

// ExtractText returns the first candidate's text. The helper is consulted
// first, then the candidates shape is traversed by hand. ErrEmptyResponse is
// returned when neither yields non-blank text.
func (u *Unwrapper) ExtractText(raw any) (string, error) {
	if raw == nil {
		return "", ErrEmptyResponse
	}
	if u.helper != nil {
		if text, ok := u.helper.FirstCandidateText(raw); ok && strings.TrimSpace(text) != "" {
			return text, nil
		}
	}
	if text, ok := traverse(raw); ok && strings.TrimSpace(text) != "" {
		return text, nil
	}
	return "", ErrEmptyResponse
}

func traverse(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case entity.GenerationResult:
		return firstPart(v.Candidates)
	case *entity.GenerationResult:
		if v == nil {
			return "", false
		}
		return firstPart(v.Candidates)
	case []entity.Candidate:
		return firstPart(v)
	case json.RawMessage:
		return fromJSON(v)
	case []byte:
		return fromJSON(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return fromJSON(b)
	}
}

func firstPart(candidates []entity.Candidate) (string, bool) {
	if len(candidates) == 0 || len(candidates[0].Content.Parts) == 0 {
		return "", false
	}
	return candidates[0].Content.Parts[0].Text, true
}

func fromJSON(b []byte) (string, bool) {
	if !gjson.ValidBytes(b) {
		return "", false
	}
	for _, path := range candidatePaths {
		if r := gjson.GetBytes(b, path); r.Type == gjson.String {
			return r.Str, true
		}
	}
	return "", false
}
