package registry

import (
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/sashabaranov/go-openai"

	"tldr-summary/internal/domain/entity"
)

// FilterModelsByCapability keeps the models carrying capability, in input order.
func (r *Registry) FilterModelsByCapability(models []entity.ModelDescriptor, capability entity.Capability) []entity.ModelDescriptor {
	out := make([]entity.ModelDescriptor, 0, len(models))
	for _, m := range models {
		if m.Supports(capability) {
			out = append(out, m)
		}
	}
	return out
}

// FirstCandidateText reads the first text candidate from the native result
// types returned by this registry's providers.
func (r *Registry) FirstCandidateText(raw any) (string, bool) {
	switch v := raw.(type) {
	case *anthropic.Message:
		if v == nil {
			return "", false
		}
		return anthropicText(v)
	case anthropic.Message:
		return anthropicText(&v)
	case *openai.ChatCompletionResponse:
		if v == nil {
			return "", false
		}
		return openAIText(*v)
	case openai.ChatCompletionResponse:
		return openAIText(v)
	default:
		return "", false
	}
}

func anthropicText(m *anthropic.Message) (string, bool) {
	for _, block := range m.Content {
		if tb, ok := block.AsAny().(anthropic.TextBlock); ok && strings.TrimSpace(tb.Text) != "" {
			return tb.Text, true
		}
	}
	return "", false
}

func openAIText(resp openai.ChatCompletionResponse) (string, bool) {
	if len(resp.Choices) == 0 {
		return "", false
	}
	content := resp.Choices[0].Message.Content
	return content, strings.TrimSpace(content) != ""
}
