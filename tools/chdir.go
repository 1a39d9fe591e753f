package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"ai/errors"
)

// ChdirTool changes the working directory for all subsequent commands.
type ChdirTool struct {
	env *Env
}

func (t *ChdirTool) Name() string { return "cd" }
func (t *ChdirTool) Description() string {
	return "Changes the working directory for all subsequent exec and term calls. Args: path (string), absolute or relative to the current directory."
}

func (t *ChdirTool) Schema() Schema {
	return Schema{
		Properties: map[string]interface{}{
			"path": map[string]interface{}{
				"type":        "string",
				"description": "Target directory, absolute or relative to the current working directory.",
			},
		},
		Required: []string{"path"},
	}
}

// Execute validates the target before mutating any state, so a failed change
// leaves the previous directory intact.
func (t *ChdirTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	path, err := stringArg(args, "path")
	if err != nil {
		return "", err
	}

	target := path
	if !filepath.IsAbs(target) {
		target = filepath.Join(t.env.Dir(), target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	if err != nil {
		return "", errors.Wrapf(err, "cannot change directory to '%s'", path)
	}
	if !info.IsDir() {
		return "", errors.New("cannot change directory to '%s': not a directory", path)
	}

	t.env.dir = target
	return fmt.Sprintf("Changed directory to %s", target), nil
}
