// Package chat holds the conversation types exchanged between the agent
// loop and the LLM backends. A conversation lives only for the duration of
// a single run; nothing is persisted.
package chat

// Message is one entry in the conversation fed to the model.
type Message struct {
	Role    string // "system", "user", "assistant" or "tool"
	Content string
	// ToolCalls carries the calls requested by an assistant message. On a
	// "tool" message it holds exactly one entry identifying the call the
	// Content is the result of.
	ToolCalls []ToolCall
}

// ToolCall is a single tool invocation requested by the model.
type ToolCall struct {
	ID   string
	Name string
	Args map[string]interface{}
}

// Usage counts the tokens consumed by one streaming step.
type Usage struct {
	InputTokens  int64
	OutputTokens int64
}

// Add accumulates another step's usage into u.
func (u *Usage) Add(other Usage) {
	u.InputTokens += other.InputTokens
	u.OutputTokens += other.OutputTokens
}

// Total returns the combined input and output token count.
func (u Usage) Total() int64 {
	return u.InputTokens + u.OutputTokens
}
