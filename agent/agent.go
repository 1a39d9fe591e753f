// Package agent drives the streaming response loop: it sends the prompt to
// the model, prints text as it streams in, executes the tools the model
// requests, feeds their results back, and tallies token usage per step until
// the model answers without further tool calls.
package agent

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"ai/chat"
	"ai/errors"
	"ai/llm"
	"ai/tools"
)

const systemPrompt = `You are a helpful terminal assistant running directly on the user's machine.
You answer questions and perform tasks by running shell commands.

You have three tools:
- cd: change the working directory for all subsequent commands
- exec: run a shell command non-interactively and read its captured output
- term: run an interactive terminal program (editor, pager, REPL, ssh) that takes over the terminal until it exits

Prefer exec for anything that does not need user interaction. Use term only when a program requires the terminal. Keep answers short and do not repeat command output the user has already seen on screen.`

var styleReset = color.New(color.Reset)

// Agent owns one run's conversation with the model.
type Agent struct {
	client   llm.Client
	registry *tools.Registry
	out      io.Writer
	usage    chat.Usage
}

// New creates an Agent writing streamed text and tool echoes to out.
func New(client llm.Client, registry *tools.Registry, out io.Writer) *Agent {
	return &Agent{
		client:   client,
		registry: registry,
		out:      out,
	}
}

// Usage returns the token usage accumulated across all steps so far.
func (a *Agent) Usage() chat.Usage { return a.usage }

// Run performs one prompt/response exchange. It returns once the model
// produces a response with no further tool calls, or on the first fatal
// error. There is no cap on the number of tool-call steps.
func (a *Agent) Run(ctx context.Context, prompt string) error {
	history := []chat.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	}
	active := a.registry.Active()

	for {
		assistantMsg, usage, err := a.client.StreamChat(ctx, history, active, func(text string) {
			fmt.Fprint(a.out, text)
		})
		if err != nil {
			return errors.Wrapf(err, "model request failed")
		}

		// Step boundary: tally usage, reset styling, separate the step's
		// output from whatever follows.
		a.usage.Add(usage)
		styleReset.Fprintln(a.out)

		history = append(history, *assistantMsg)
		if len(assistantMsg.ToolCalls) == 0 {
			return nil
		}

		// Tools run sequentially; each invocation produces exactly one
		// result message fed back into the conversation.
		for _, call := range assistantMsg.ToolCalls {
			result, err := a.dispatch(ctx, call)
			if err != nil {
				return err
			}
			history = append(history, chat.Message{
				Role:      "tool",
				Content:   result,
				ToolCalls: []chat.ToolCall{call},
			})
		}
	}
}

// dispatch executes one tool call. Recoverable failures become error text for
// the model; fatal ones (a subprocess that never spawned) abort the run.
func (a *Agent) dispatch(ctx context.Context, call chat.ToolCall) (string, error) {
	tool, ok := a.registry.Get(call.Name)
	if !ok {
		return fmt.Sprintf("Error: unknown tool '%s'", call.Name), nil
	}
	result, err := tool.Execute(ctx, call.Args)
	if err != nil {
		if errors.IsFatal(err) {
			return "", err
		}
		return "Error: " + err.Error(), nil
	}
	return result, nil
}
