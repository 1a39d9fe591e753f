package tools

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"ai/errors"
)

// TermTool launches a shell command attached directly to the controlling
// terminal. The spawned program inherits stdin, stdout and stderr, so full
// TTY programs (editors, pagers, remote shells) work; the response loop is
// suspended until it exits.
type TermTool struct {
	env *Env
}

func (t *TermTool) Name() string { return "term" }
func (t *TermTool) Description() string {
	return "Runs an interactive terminal program with full TTY control, waiting until it exits. Use for editors, REPLs, ssh and anything that needs user input. Args: command (string)."
}

func (t *TermTool) Schema() Schema {
	return Schema{
		Properties: map[string]interface{}{
			"command": map[string]interface{}{
				"type":        "string",
				"description": "Shell command line to run attached to the terminal via sh -c.",
			},
		},
		Required: []string{"command"},
	}
}

func (t *TermTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	command, err := stringArg(args, "command")
	if err != nil {
		return "", err
	}

	t.env.echoCommand(command)

	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = t.env.Dir()
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	runErr := cmd.Run()
	if runErr == nil {
		return "Done.", nil
	}

	exitErr, ok := runErr.(*exec.ExitError)
	if !ok {
		return "", errors.Fatalf(runErr, "failed to launch command '%s'", command)
	}
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return fmt.Sprintf("Terminated by signal %s.", ws.Signal()), nil
	}
	return fmt.Sprintf("Exited with code %d.", exitErr.ExitCode()), nil
}
