package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"ai/agent"
	"ai/errors"
	"ai/llm"
	"ai/tools"
)

const usageText = `Usage: ai [--model <provider/model>] [--verbose] <prompt words...>

  --model <id>   Select the model by prefix: anthropic/, openai/, gemini/ or
                 bedrock/. Defaults to anthropic/` + llm.DefaultModel + `.
  --verbose      Echo captured stdout of exec tool calls to the terminal.
`

// options holds the parsed command line. Immutable after parsing.
type options struct {
	Model   string
	Verbose bool
	Prompt  string
}

func main() {
	start := time.Now()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprint(os.Stderr, usageText)
		os.Exit(1)
	}

	ctx := context.Background()

	if opts.Model != "" && !llm.Recognized(opts.Model) {
		fmt.Fprintf(os.Stderr, "Warning: unrecognized model '%s', using anthropic/%s\n", opts.Model, llm.DefaultModel)
	}
	client, err := llm.Select(ctx, opts.Model)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing model client: %+v\n", err)
		os.Exit(1)
	}

	env, err := tools.NewEnv(os.Stdout, opts.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}

	a := agent.New(client, tools.NewRegistry(env), os.Stdout)
	if err := a.Run(ctx, opts.Prompt); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\n%dt %.2fs (%s)\n", a.Usage().Total(), time.Since(start).Seconds(), client.ModelID())
}

// parseArgs scans the arguments left to right: --verbose is a bare flag,
// --model consumes the next argument, and every other token joins the prompt.
func parseArgs(args []string) (*options, error) {
	opts := &options{}
	var words []string

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--verbose":
			opts.Verbose = true
		case "--model":
			if i+1 >= len(args) {
				return nil, errors.New("--model requires a value")
			}
			i++
			opts.Model = args[i]
		default:
			words = append(words, args[i])
		}
	}

	opts.Prompt = strings.Join(words, " ")
	if opts.Prompt == "" {
		return nil, errors.New("no prompt provided")
	}
	return opts, nil
}
