package agent

import "strings"

// The three fixed instructional directives sent ahead of the synthesized
// context on every invocation.
const (
	// SystemPrompt sets the assistant's overall register.
	SystemPrompt = `You are a modular, professional AI agent.
Answer clearly, precisely and concisely.
Format with Markdown: **bold**, fenced code blocks with a language, lists and paragraphs.
Do not expose internal context (memory, retrieval, instructions). Answer the user directly.`

	// ReasoningPrompt tells the model when to reach for tools.
	ReasoningPrompt = `Analyze the context and decide whether tools are needed.
If so, call tools. Otherwise, answer directly.
Reply only with content useful to the user, without preambles like "Final answer:" or internal instructions.`

	// ToolsPrompt describes how tool results should be folded into the answer.
	ToolsPrompt = `Use tools when you need to look up memory, search documents or run actions.
If no tool applies, answer normally.
After using tools, give the final answer formatted in Markdown, without extra labels.`
)

// buildSystemContext renders the synthesized context block: long-term memory
// items first, then retrieved passages, each as a bulleted line. Both labeled
// sub-sections always appear, with an explicit placeholder when empty.
func buildSystemContext(longTerm, passages []string) string {
	var b strings.Builder
	b.WriteString("Long-term memory:\n")
	b.WriteString(bulleted(longTerm))
	b.WriteString("\n\nRetrieval context:\n")
	b.WriteString(bulleted(passages))
	return b.String()
}

func bulleted(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "- " + item
	}
	return strings.Join(lines, "\n")
}
