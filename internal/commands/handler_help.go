package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// HelpHandlerFactory creates handlers that display command help.
type HelpHandlerFactory struct {
	handler *Handler
}

func (f *HelpHandlerFactory) ValidateConfig(config map[string]any) error {
	return nil
}

func (f *HelpHandlerFactory) Create(config map[string]any) (CommandFunc, error) {
	return func(ctx context.Context, cc *Context) error {
		if name := cc.String("command"); name != "" {
			return f.showCommand(cc.Actor, name)
		}
		f.listCommands(cc.Actor)
		return nil
	}, nil
}

// listCommands displays all commands grouped by category.
func (f *HelpHandlerFactory) listCommands(actor Actor) {
	groups := make(map[string][]string)
	for _, cmd := range f.handler.Commands() {
		category := cmd.Category
		if category == "" {
			category = "other"
		}
		groups[category] = append(groups[category], cmd.Name)
	}

	categories := make([]string, 0, len(groups))
	for cat := range groups {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	lines := []string{"Available commands:"}
	for _, cat := range categories {
		cmds := groups[cat]
		sort.Strings(cmds)
		label := strings.ToUpper(cat[:1]) + cat[1:]
		lines = append(lines, fmt.Sprintf("  %s: %s", label, strings.Join(cmds, ", ")))
	}

	actor.Send(strings.Join(lines, "\n"))
}

// showCommand displays detailed help for a specific command.
func (f *HelpHandlerFactory) showCommand(actor Actor, name string) error {
	cmd, ok := f.handler.Find(name)
	if !ok {
		return NewUserErrorf("Command %q is unknown.", name)
	}

	lines := []string{fmt.Sprintf("%s: %s", cmd.Name, cmd.Description)}
	if len(cmd.Inputs) > 0 {
		lines = append(lines, fmt.Sprintf("Usage: %s", cmd.Usage()))
	}

	actor.Send(strings.Join(lines, "\n"))
	return nil
}
