package entity

// GenerationResult is the generic candidates-based result shape returned by
// providers that do not expose an SDK-specific type.
type GenerationResult struct {
	Candidates []Candidate `json:"candidates"`
}

// Candidate is one alternative produced by a provider.
type Candidate struct {
	Content CandidateContent `json:"content"`
}

// CandidateContent holds the ordered parts of a candidate.
type CandidateContent struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Part is a single content part. Only text parts are produced here.
type Part struct {
	Text string `json:"text"`
}

// TextResult wraps a single text into a GenerationResult.
func TextResult(text string) GenerationResult {
	return GenerationResult{
		Candidates: []Candidate{{
			Content: CandidateContent{Role: "model", Parts: []Part{{Text: text}}},
		}},
	}
}
