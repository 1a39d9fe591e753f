// Package tools implements the three capabilities the model may invoke:
// changing the working directory, running a shell command non-interactively,
// and running an interactive terminal program.
package tools

import (
	"context"
	"io"
	"os"
	"strings"

	"ai/errors"

	"github.com/fatih/color"
)

// Schema describes a tool's JSON input schema in the shape every provider
// backend expects: an object with named properties and a required list.
type Schema struct {
	Properties map[string]interface{}
	Required   []string
}

// Tool defines the interface for any action the agent can take.
type Tool interface {
	Name() string
	Description() string
	Schema() Schema
	Execute(ctx context.Context, args map[string]interface{}) (string, error)
}

// Env is the run-scoped state shared by all tools. The working directory is
// process-wide in spirit but modelled here as a single field so that only the
// cd tool ever writes it and every exec/term call reads the current value.
type Env struct {
	dir     string
	Verbose bool
	Out     io.Writer
}

var faint = color.New(color.Faint)

// NewEnv creates an Env rooted at the process's initial working directory.
func NewEnv(out io.Writer, verbose bool) (*Env, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrapf(err, "could not determine working directory")
	}
	return &Env{dir: wd, Verbose: verbose, Out: out}, nil
}

// Dir returns the current working directory for tool execution.
func (e *Env) Dir() string { return e.dir }

// echoCommand prints the command about to run, dimmed and prefixed with "$ ".
// Only the displayed command is trimmed; the executed one is passed verbatim.
func (e *Env) echoCommand(command string) {
	faint.Fprintf(e.Out, "\n$ %s\n", strings.TrimSpace(command))
}

// Registry holds all available tools in the order they are presented to the
// model.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry registers the fixed tool set against the given Env.
func NewRegistry(env *Env) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.register(&ChdirTool{env: env})
	r.register(&ExecTool{env: env})
	r.register(&TermTool{env: env})
	return r
}

func (r *Registry) register(t Tool) {
	r.tools[t.Name()] = t
	r.order = append(r.order, t.Name())
}

// Get looks up a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Active returns every registered tool in registration order.
func (r *Registry) Active() []Tool {
	active := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		active = append(active, r.tools[name])
	}
	return active
}

// stringArg extracts a required string argument from a tool input payload.
func stringArg(args map[string]interface{}, key string) (string, error) {
	v, ok := args[key].(string)
	if !ok {
		return "", errors.New("missing or invalid '%s' argument", key)
	}
	return v, nil
}
