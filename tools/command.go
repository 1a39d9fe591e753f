package tools

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"strings"

	"ai/errors"
)

// ExecTool runs a shell command to completion and captures its output for
// the model. Nothing is streamed back to the terminal except the command
// echo and, in verbose mode, the captured stdout.
type ExecTool struct {
	env *Env
}

func (t *ExecTool) Name() string { return "exec" }
func (t *ExecTool) Description() string {
	return "Executes a shell command non-interactively in the current working directory and returns its output. Args: command (string)."
}

func (t *ExecTool) Schema() Schema {
	return Schema{
		Properties: map[string]interface{}{
			"command": map[string]interface{}{
				"type":        "string",
				"description": "Shell command line to execute via sh -c.",
			},
		},
		Required: []string{"command"},
	}
}

func (t *ExecTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	command, err := stringArg(args, "command")
	if err != nil {
		return "", err
	}

	t.env.echoCommand(command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = t.env.Dir()
	cmd.Env = os.Environ()

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	// Verbose echo happens regardless of whether the result below turns out
	// to be an error.
	if t.env.Verbose && stdout.Len() > 0 {
		for _, line := range strings.Split(strings.TrimRight(stdout.String(), "\n"), "\n") {
			faint.Fprintf(t.env.Out, "  %s\n", line)
		}
	}

	if runErr != nil {
		if _, ok := runErr.(*exec.ExitError); !ok {
			// The command never ran at all. This aborts the run rather than
			// feeding an error result back to the model.
			return "", errors.Fatalf(runErr, "failed to launch command '%s'", command)
		}
	}

	if stderr.Len() > 0 {
		return "Error: " + stderr.String(), nil
	}
	if runErr != nil {
		// Ran but exited nonzero with a silent stderr. Surfacing the exit
		// status keeps the model informed instead of pretending success.
		return "Error: " + runErr.Error(), nil
	}
	return stdout.String(), nil
}
