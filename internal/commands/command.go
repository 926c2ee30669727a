package commands

import (
	"fmt"
	"strings"
)

// InputType represents the type of a command input parameter.
type InputType string

const (
	InputTypeString InputType = "string" // Text input (single word if rest=false, multi-word if rest=true)
	InputTypeNumber InputType = "number" // Integer
	InputTypeVnum   InputType = "vnum"   // Non-negative vnum, or "new" when AllowNew is set
	InputTypeKind   InputType = "kind"   // Prototype kind name or abbreviation
)

// InputSpec defines an input parameter that a command accepts from user input.
type InputSpec struct {
	Name     string    `json:"name" yaml:"name"`
	Type     InputType `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Rest     bool      `json:"rest" yaml:"rest"` // If true, captures all remaining input
	AllowNew bool      `json:"allow_new,omitempty" yaml:"allow_new,omitempty"`
}

// Command defines one command an editor can type.
type Command struct {
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description" yaml:"description"`
	Category    string         `json:"category" yaml:"category"`
	Handler     string         `json:"handler" yaml:"handler"`
	Config      map[string]any `json:"config" yaml:"config"` // Config passed to handler, may contain input templates
	Inputs      []InputSpec    `json:"inputs" yaml:"inputs"`

	// Confirm is a template the actor must answer yes to before the command
	// runs. It sees the same data as the handler.
	Confirm string `json:"confirm,omitempty" yaml:"confirm,omitempty"`
}

func (c *Command) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("command name not set")
	}
	if strings.ContainsAny(c.Name, " \t") {
		return fmt.Errorf("command name %q contains whitespace", c.Name)
	}
	if c.Handler == "" {
		return fmt.Errorf("command handler not set")
	}

	for i, input := range c.Inputs {
		if input.Name == "" {
			return fmt.Errorf("input %d: name is required", i)
		}
		if input.Type == "" {
			return fmt.Errorf("input %q: type is required", input.Name)
		}
		switch input.Type {
		case InputTypeString, InputTypeNumber, InputTypeVnum, InputTypeKind:
		default:
			return fmt.Errorf("input %q: unknown type %q", input.Name, input.Type)
		}
		// Only the last input can have rest=true
		if input.Rest && i != len(c.Inputs)-1 {
			return fmt.Errorf("input %q: only the last input can have rest=true", input.Name)
		}
		if input.Rest && input.Type != InputTypeString {
			return fmt.Errorf("input %q: only string inputs can have rest=true", input.Name)
		}
		if input.AllowNew && input.Type != InputTypeVnum {
			return fmt.Errorf("input %q: allow_new only applies to vnum inputs", input.Name)
		}
	}

	return nil
}

// Usage renders the command with its inputs, required ones in angle brackets.
func (c *Command) Usage() string {
	parts := []string{c.Name}
	for _, input := range c.Inputs {
		name := input.Name
		if input.AllowNew {
			name += "|new"
		}
		if input.Required {
			parts = append(parts, fmt.Sprintf("<%s>", name))
		} else {
			parts = append(parts, fmt.Sprintf("[%s]", name))
		}
	}
	return strings.Join(parts, " ")
}
