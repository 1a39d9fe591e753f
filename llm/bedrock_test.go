package llm

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"ai/chat"
	"ai/tools"
)

// mockTool is a simple tool stub for conversion tests.
type mockTool struct {
	name        string
	description string
}

func (m *mockTool) Name() string        { return m.name }
func (m *mockTool) Description() string { return m.description }

func (m *mockTool) Schema() tools.Schema {
	return tools.Schema{
		Properties: map[string]interface{}{
			"command": map[string]interface{}{"type": "string"},
		},
		Required: []string{"command"},
	}
}

func (m *mockTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	return "mock result", nil
}

func TestConvertMessagesToBedrockFormat(t *testing.T) {
	messages := []chat.Message{
		{Role: "system", Content: "Be terse."},
		{Role: "user", Content: "Hello, world!"},
	}

	result, system := convertMessagesToBedrockFormat(messages)
	if system != "Be terse." {
		t.Errorf("expected system prompt lifted out, got %q", system)
	}
	if len(result) != 1 {
		t.Fatalf("expected 1 message, got %d", len(result))
	}
	if result[0]["role"] != "user" {
		t.Errorf("expected role 'user', got '%s'", result[0]["role"])
	}

	// Assistant message carrying a tool call.
	messages = []chat.Message{
		{
			Role: "assistant",
			ToolCalls: []chat.ToolCall{
				{ID: "call_1", Name: "exec", Args: map[string]interface{}{"command": "ls"}},
			},
		},
		{
			Role:      "tool",
			Content:   "file.txt\n",
			ToolCalls: []chat.ToolCall{{ID: "call_1", Name: "exec"}},
		},
	}

	result, _ = convertMessagesToBedrockFormat(messages)
	if len(result) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(result))
	}
	if result[0]["role"] != "assistant" {
		t.Errorf("expected role 'assistant', got '%s'", result[0]["role"])
	}
	if result[1]["role"] != "user" {
		t.Errorf("expected tool result wrapped in role 'user', got '%s'", result[1]["role"])
	}
}

func TestCreateBedrockRequestIncludesSchemas(t *testing.T) {
	messages := []map[string]interface{}{
		{"role": "user", "content": []map[string]interface{}{{"type": "text", "text": "hi"}}},
	}
	body, err := createBedrockRequest(messages, "persona", []tools.Tool{
		&mockTool{name: "exec", description: "Runs a command."},
	})
	if err != nil {
		t.Fatalf("createBedrockRequest: %v", err)
	}

	var request map[string]interface{}
	if err := json.Unmarshal(body, &request); err != nil {
		t.Fatalf("request is not valid JSON: %v", err)
	}
	if request["system"] != "persona" {
		t.Errorf("expected system prompt in request, got %v", request["system"])
	}
	toolDefs, ok := request["tools"].([]interface{})
	if !ok || len(toolDefs) != 1 {
		t.Fatalf("expected 1 tool definition, got %v", request["tools"])
	}
	def := toolDefs[0].(map[string]interface{})
	schema, ok := def["input_schema"].(map[string]interface{})
	if !ok {
		t.Fatal("expected input_schema on tool definition")
	}
	props, ok := schema["properties"].(map[string]interface{})
	if !ok || props["command"] == nil {
		t.Errorf("expected 'command' property in schema, got %v", schema["properties"])
	}
}

func TestProcessBedrockResponse(t *testing.T) {
	body := []byte(`{
		"content": [
			{"type": "text", "text": "Listing files."},
			{"type": "tool_use", "id": "toolu_1", "name": "exec", "input": {"command": "ls"}}
		],
		"usage": {"input_tokens": 12, "output_tokens": 34}
	}`)

	msg, usage, err := processBedrockResponse(body)
	if err != nil {
		t.Fatalf("processBedrockResponse: %v", err)
	}
	if msg.Content != "Listing files." {
		t.Errorf("unexpected content %q", msg.Content)
	}
	if len(msg.ToolCalls) != 1 || msg.ToolCalls[0].Name != "exec" || msg.ToolCalls[0].ID != "toolu_1" {
		t.Errorf("unexpected tool calls %+v", msg.ToolCalls)
	}
	if usage.InputTokens != 12 || usage.OutputTokens != 34 {
		t.Errorf("unexpected usage %+v", usage)
	}
	if usage.Total() != 46 {
		t.Errorf("unexpected usage total %d", usage.Total())
	}
}

func TestProcessBedrockResponseError(t *testing.T) {
	_, _, err := processBedrockResponse([]byte(`{"error": "model not found"}`))
	if err == nil || !strings.Contains(err.Error(), "model not found") {
		t.Errorf("expected API error surfaced, got %v", err)
	}
}
