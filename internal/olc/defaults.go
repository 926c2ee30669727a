package olc

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pixil98/go-olc/internal/commands"
)

const deleteConfirm = "Really delete {{ .Inputs.kind }} {{ .Inputs.vnum }}? Everything that uses it will be changed."

// DefaultCommands is the editor's command set. Abbreviations resolve in this
// order, so delete comes last and has to be typed out.
func DefaultCommands() []*commands.Command {
	kind := commands.InputSpec{Name: "kind", Type: commands.InputTypeKind, Required: true}
	optKind := commands.InputSpec{Name: "kind", Type: commands.InputTypeKind}
	vnum := commands.InputSpec{Name: "vnum", Type: commands.InputTypeVnum, Required: true}
	optVnum := commands.InputSpec{Name: "vnum", Type: commands.InputTypeVnum}

	cmds := []*commands.Command{
		{
			Name:        "edit",
			Description: "Open a prototype for editing, or create one with 'new'.",
			Category:    "editing",
			Handler:     "edit",
			Inputs:      []commands.InputSpec{kind, {Name: "vnum", Type: commands.InputTypeVnum, Required: true, AllowNew: true}},
		},
		{
			Name:        "show",
			Description: "Show what you are editing, or a stored prototype.",
			Category:    "editing",
			Handler:     "show",
			Inputs:      []commands.InputSpec{optKind, optVnum},
		},
		{
			Name:        "save",
			Description: "Save your changes.",
			Category:    "editing",
			Handler:     "save",
		},
		{
			Name:        "abort",
			Description: "Throw away your changes.",
			Category:    "editing",
			Handler:     "abort",
		},
		{
			Name:        "copy",
			Description: "Start a new prototype as a copy of an existing one.",
			Category:    "editing",
			Handler:     "copy",
			Inputs: []commands.InputSpec{
				kind,
				{Name: "from", Type: commands.InputTypeVnum, Required: true},
				{Name: "to", Type: commands.InputTypeVnum, Required: true, AllowNew: true},
			},
		},
		{
			Name:        "list",
			Description: "List a table, optionally filtered by name.",
			Category:    "information",
			Handler:     "list",
			Inputs:      []commands.InputSpec{kind, {Name: "filter", Type: commands.InputTypeString, Rest: true}},
		},
		{
			Name:        "search",
			Description: "List everything that refers to a prototype.",
			Category:    "information",
			Handler:     "search",
			Inputs:      []commands.InputSpec{kind, vnum},
		},
		{
			Name:        "audit",
			Description: "Check a prototype, a whole table, or your buffer for problems.",
			Category:    "information",
			Handler:     "audit",
			Inputs:      []commands.InputSpec{optKind, optVnum},
		},
		{
			Name:        "help",
			Description: "List commands or show help for one.",
			Category:    "information",
			Handler:     "help",
			Inputs:      []commands.InputSpec{{Name: "command", Type: commands.InputTypeString}},
		},
		{
			Name:        "who",
			Description: "Show who is online and what they are editing.",
			Category:    "information",
			Handler:     "who",
		},
		{
			Name:        "quit",
			Description: "Leave the editor. Unsaved changes are lost.",
			Category:    "session",
			Handler:     "quit",
		},
	}

	for _, name := range ModuleNames() {
		cmds = append(cmds, &commands.Command{
			Name:        name,
			Description: fmt.Sprintf("Change the %s of what you are editing.", name),
			Category:    "fields",
			Handler:     "module",
			Config:      map[string]any{"module": name},
			Inputs:      []commands.InputSpec{{Name: "args", Type: commands.InputTypeString, Rest: true}},
		})
	}

	return append(cmds, &commands.Command{
		Name:        "delete",
		Description: "Delete a prototype and remove every reference to it.",
		Category:    "editing",
		Handler:     "delete",
		Inputs:      []commands.InputSpec{kind, vnum},
		Confirm:     deleteConfirm,
	})
}

// ModuleNames lists every field module of every kind, sorted.
func ModuleNames() []string {
	names := map[string]struct{}{}
	for _, mods := range []map[string]module{
		bookModules(), eventModules(), genericModules(), adventureModules(),
		buildingModules(), cropModules(), globalModules(), sectorModules(),
		craftModules(), questModules(), progressModules(), shopModules(),
		socialModules(), vehicleModules(), objectModules(),
	} {
		for name := range mods {
			names[name] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(names))
}
