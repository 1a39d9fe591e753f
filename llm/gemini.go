package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"ai/chat"
	"ai/errors"
	"ai/tools"
)

// GeminiClient is a client for the Google Gemini API.
type GeminiClient struct {
	model *genai.GenerativeModel
	name  string
}

// NewGeminiClient creates a new GeminiClient.
// It requires the GEMINI_API_KEY environment variable to be set.
func NewGeminiClient(ctx context.Context, modelName string) (*GeminiClient, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create genai client")
	}

	return &GeminiClient{
		model: client.GenerativeModel(modelName),
		name:  modelName,
	}, nil
}

func (g *GeminiClient) ModelID() string { return "gemini/" + g.name }

// StreamChat streams one assistant step from the Gemini API.
func (g *GeminiClient) StreamChat(ctx context.Context, messages []chat.Message, availableTools []tools.Tool, onText func(string)) (*chat.Message, chat.Usage, error) {
	history, system := convertMessagesToGeminiContent(messages)
	if len(history) == 0 {
		return nil, chat.Usage{}, errors.New("no messages to send to Gemini")
	}
	if system != "" {
		g.model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}
	g.model.Tools = convertToolsToGeminiTools(availableTools)

	// The last message is the new prompt; everything before it is history.
	last := history[len(history)-1]
	chatSession := g.model.StartChat()
	chatSession.History = history[:len(history)-1]

	var responseContent string
	var toolCalls []chat.ToolCall
	var usage chat.Usage
	toolCallIDCounter := 0

	iter := chatSession.SendMessageStream(ctx, last.Parts...)
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, chat.Usage{}, errors.Wrapf(err, "failed to stream message from Gemini")
		}
		if resp.UsageMetadata != nil {
			usage = chat.Usage{
				InputTokens:  int64(resp.UsageMetadata.PromptTokenCount),
				OutputTokens: int64(resp.UsageMetadata.CandidatesTokenCount),
			}
		}
		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				responseContent += string(v)
				onText(string(v))
			case genai.FunctionCall:
				toolCalls = append(toolCalls, chat.ToolCall{
					ID:   fmt.Sprintf("call_%d_%s", toolCallIDCounter, v.Name),
					Name: v.Name,
					Args: v.Args,
				})
				toolCallIDCounter++
			}
		}
	}

	return &chat.Message{
		Role:      "assistant",
		Content:   responseContent,
		ToolCalls: toolCalls,
	}, usage, nil
}

// convertMessagesToGeminiContent converts our internal message format to
// Gemini's. System messages are lifted out into the system instruction.
func convertMessagesToGeminiContent(messages []chat.Message) ([]*genai.Content, string) {
	var contents []*genai.Content
	var system string

	for _, msg := range messages {
		switch msg.Role {
		case "system":
			system = msg.Content
		case "assistant":
			var parts []genai.Part
			if msg.Content != "" {
				parts = append(parts, genai.Text(msg.Content))
			}
			for _, tc := range msg.ToolCalls {
				parts = append(parts, genai.FunctionCall{Name: tc.Name, Args: tc.Args})
			}
			if len(parts) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: parts})
		case "tool":
			if len(msg.ToolCalls) == 0 {
				continue
			}
			contents = append(contents, &genai.Content{
				Role: "user",
				Parts: []genai.Part{genai.FunctionResponse{
					Name:     msg.ToolCalls[0].Name,
					Response: map[string]interface{}{"result": msg.Content},
				}},
			})
		default:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []genai.Part{genai.Text(msg.Content)},
			})
		}
	}
	return contents, system
}

// convertToolsToGeminiTools converts our Tool interface to Gemini's
// FunctionDeclaration format.
func convertToolsToGeminiTools(ts []tools.Tool) []*genai.Tool {
	if len(ts) == 0 {
		return nil
	}
	var funcDecls []*genai.FunctionDeclaration
	for _, t := range ts {
		funcDecls = append(funcDecls, &genai.FunctionDeclaration{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  convertSchemaToGemini(t.Schema()),
		})
	}
	return []*genai.Tool{{FunctionDeclarations: funcDecls}}
}

// convertSchemaToGemini maps a tool schema onto genai.Schema. Every tool
// argument in this program is a string, so properties that don't declare a
// type default to string.
func convertSchemaToGemini(s tools.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Properties))
	for name, raw := range s.Properties {
		gs := &genai.Schema{Type: genai.TypeString}
		if prop, ok := raw.(map[string]interface{}); ok {
			if desc, ok := prop["description"].(string); ok {
				gs.Description = desc
			}
		}
		props[name] = gs
	}
	return &genai.Schema{
		Type:       genai.TypeObject,
		Properties: props,
		Required:   s.Required,
	}
}
