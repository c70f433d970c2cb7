package summary

import "strings"

const (
	// DefaultInstruction is used when a summary request carries no instruction.
	DefaultInstruction = "Please provide a concise TL;DR summary of this article with a call-to-action at the end."

	// ConnectionTestPrompt is sent by TestConnection.
	ConnectionTestPrompt = `Please respond with "Connection successful" if you can read this message.`

	htmlInstructions = "\n\nPlease format your response as HTML with proper <ul> and <li> tags for any bullet points or lists. Use <p> tags for paragraphs and <strong> for emphasis."
	contentHeader    = "\n\nContent to summarize:\n"
)

// BuildSummaryPrompt appends the HTML formatting instructions and the
// article content to instruction.
func BuildSummaryPrompt(instruction, content string) string {
	var b strings.Builder
	b.Grow(len(instruction) + len(htmlInstructions) + len(contentHeader) + len(content))
	b.WriteString(strings.TrimSpace(instruction))
	b.WriteString(htmlInstructions)
	b.WriteString(contentHeader)
	b.WriteString(content)
	return b.String()
}
