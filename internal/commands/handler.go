package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/metrics"
	"github.com/pixil98/go-olc/internal/storage"
)

// Actor is whoever typed the command.
type Actor interface {
	Name() string
	// Send writes one message to the actor.
	Send(msg string)
	// Confirm asks a yes/no question and waits for the answer.
	Confirm(ctx context.Context, prompt string) (bool, error)
	// Quit ends the actor's connection once the command returns.
	Quit()
}

// Context is what a running command sees.
type Context struct {
	Actor   Actor
	Command *Command
	Inputs  map[string]any
	Config  map[string]string
}

func (c *Context) Has(name string) bool {
	_, ok := c.Inputs[name]
	return ok
}

func (c *Context) String(name string) string {
	s, _ := c.Inputs[name].(string)
	return s
}

func (c *Context) Int(name string) int {
	n, _ := c.Inputs[name].(int)
	return n
}

// Vnum returns the named vnum input, or NewVnum when it was given as "new"
// and Nothing when it was not given.
func (c *Context) Vnum(name string) storage.Vnum {
	v, ok := c.Inputs[name].(storage.Vnum)
	if !ok {
		return storage.Nothing
	}
	return v
}

func (c *Context) Kind(name string) game.Kind {
	k, _ := c.Inputs[name].(game.Kind)
	return k
}

// CommandFunc is the signature for compiled command functions.
type CommandFunc func(ctx context.Context, cc *Context) error

// HandlerFactory creates CommandFuncs from command configurations.
type HandlerFactory interface {
	// ValidateConfig validates that the config contains required fields.
	ValidateConfig(config map[string]any) error
	// Create creates a CommandFunc from the validated config.
	Create(config map[string]any) (CommandFunc, error)
}

// FactoryFunc adapts a CommandFunc that takes no config into a factory.
type FactoryFunc CommandFunc

func (f FactoryFunc) ValidateConfig(map[string]any) error { return nil }

func (f FactoryFunc) Create(map[string]any) (CommandFunc, error) {
	return CommandFunc(f), nil
}

// compiledCommand holds a command that's been validated and compiled.
type compiledCommand struct {
	cmd     *Command
	cmdFunc CommandFunc
}

type HandlerOpt func(*Handler)

func WithMetrics(m *metrics.Metrics) HandlerOpt {
	return func(h *Handler) {
		h.metrics = m
	}
}

// Handler parses command lines and runs them one at a time. Every command
// body runs under the same lock, as does anything passed to Exclusive.
type Handler struct {
	mu sync.Mutex

	factories map[string]HandlerFactory
	compiled  []*compiledCommand
	metrics   *metrics.Metrics
}

func NewHandler(opts ...HandlerOpt) *Handler {
	h := &Handler{
		factories: make(map[string]HandlerFactory),
	}
	for _, opt := range opts {
		opt(h)
	}

	h.RegisterFactory("help", &HelpHandlerFactory{handler: h})
	h.RegisterFactory("quit", &QuitHandlerFactory{})
	return h
}

// RegisterFactory registers a handler factory by name.
// The name must match the "handler" field of command definitions.
func (h *Handler) RegisterFactory(name string, factory HandlerFactory) error {
	if name == "" {
		return fmt.Errorf("handler name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("handler factory cannot be nil")
	}
	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("handler factory %q already registered", name)
	}
	h.factories[name] = factory
	return nil
}

// Add validates and compiles commands. Abbreviations resolve to the first
// matching command in the order commands were added.
func (h *Handler) Add(cmds ...*Command) error {
	for _, cmd := range cmds {
		if err := h.compile(cmd); err != nil {
			return fmt.Errorf("compiling command %q: %w", cmd.Name, err)
		}
	}
	return nil
}

func (h *Handler) compile(cmd *Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if _, ok := h.lookup(cmd.Name, true); ok {
		return fmt.Errorf("command %q already defined", cmd.Name)
	}

	factory, ok := h.factories[cmd.Handler]
	if !ok {
		return fmt.Errorf("unknown handler %q", cmd.Handler)
	}

	if err := factory.ValidateConfig(cmd.Config); err != nil {
		return fmt.Errorf("validating config: %w", err)
	}

	cmdFunc, err := factory.Create(cmd.Config)
	if err != nil {
		return fmt.Errorf("creating handler: %w", err)
	}

	h.compiled = append(h.compiled, &compiledCommand{
		cmd:     cmd,
		cmdFunc: cmdFunc,
	})
	return nil
}

// Commands returns every compiled command in the order it was added.
func (h *Handler) Commands() []*Command {
	out := make([]*Command, 0, len(h.compiled))
	for _, c := range h.compiled {
		out = append(out, c.cmd)
	}
	return out
}

// Find resolves a command name or abbreviation.
func (h *Handler) Find(name string) (*Command, bool) {
	c, ok := h.lookup(name, false)
	if !ok {
		return nil, false
	}
	return c.cmd, true
}

func (h *Handler) lookup(name string, exact bool) (*compiledCommand, bool) {
	return storage.FindByName(h.compiled, func(c *compiledCommand) string { return c.cmd.Name }, name, exact, false)
}

// Exec parses and runs one line of input. Input parsing and confirmation
// happen before the lock is taken.
func (h *Handler) Exec(ctx context.Context, actor Actor, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	compiled, ok := h.lookup(fields[0], false)
	if !ok {
		h.metrics.UserError()
		return NewUserErrorf("Unknown command: %s", fields[0])
	}
	h.metrics.Command(compiled.cmd.Name)

	err := h.run(ctx, actor, compiled, fields[1:])

	var userErr *UserError
	if errors.As(err, &userErr) {
		h.metrics.UserError()
	}
	return err
}

func (h *Handler) run(ctx context.Context, actor Actor, compiled *compiledCommand, args []string) error {
	inputs, err := parseInputs(compiled.cmd.Inputs, args)
	if err != nil {
		return err
	}

	config, err := expandConfig(compiled.cmd.Config, &InputContext{Inputs: inputs})
	if err != nil {
		return fmt.Errorf("expanding config of %q: %w", compiled.cmd.Name, err)
	}

	cc := &Context{
		Actor:   actor,
		Command: compiled.cmd,
		Inputs:  inputs,
		Config:  config,
	}

	if compiled.cmd.Confirm != "" {
		prompt, err := ExpandTemplate(compiled.cmd.Confirm, cc)
		if err != nil {
			return fmt.Errorf("expanding confirmation of %q: %w", compiled.cmd.Name, err)
		}
		yes, err := actor.Confirm(ctx, prompt)
		if err != nil {
			return err
		}
		if !yes {
			actor.Send("Cancelled.")
			return nil
		}
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return compiled.cmdFunc(ctx, cc)
}

// Exclusive runs fn under the command lock.
func (h *Handler) Exclusive(fn func() error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return fn()
}
