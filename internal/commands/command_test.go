package commands

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestCommand_Validate(t *testing.T) {
	tests := map[string]struct {
		cmd    Command
		expErr string
	}{
		"empty name": {
			cmd:    Command{Handler: "save"},
			expErr: "command name not set",
		},
		"name with space": {
			cmd:    Command{Name: "sa ve", Handler: "save"},
			expErr: `command name "sa ve" contains whitespace`,
		},
		"empty handler": {
			cmd:    Command{Name: "save"},
			expErr: "command handler not set",
		},
		"valid command with no inputs": {
			cmd: Command{Name: "save", Handler: "save"},
		},
		"valid command with inputs": {
			cmd: Command{
				Name:    "edit",
				Handler: "edit",
				Inputs: []InputSpec{
					{Name: "kind", Type: InputTypeKind, Required: true},
					{Name: "vnum", Type: InputTypeVnum, Required: true, AllowNew: true},
				},
			},
		},
		"input missing name": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs:  []InputSpec{{Type: InputTypeString}},
			},
			expErr: "input 0: name is required",
		},
		"input missing type": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs:  []InputSpec{{Name: "foo"}},
			},
			expErr: `input "foo": type is required`,
		},
		"input unknown type": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs:  []InputSpec{{Name: "foo", Type: "bogus"}},
			},
			expErr: `input "foo": unknown type "bogus"`,
		},
		"rest input not last": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs: []InputSpec{
					{Name: "first", Type: InputTypeString, Rest: true},
					{Name: "second", Type: InputTypeString},
				},
			},
			expErr: `input "first": only the last input can have rest=true`,
		},
		"rest on a number": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs:  []InputSpec{{Name: "n", Type: InputTypeNumber, Rest: true}},
			},
			expErr: `input "n": only string inputs can have rest=true`,
		},
		"allow new on a kind": {
			cmd: Command{
				Name:    "test",
				Handler: "test",
				Inputs:  []InputSpec{{Name: "k", Type: InputTypeKind, AllowNew: true}},
			},
			expErr: `input "k": allow_new only applies to vnum inputs`,
		},
		"rest input at end is valid": {
			cmd: Command{
				Name:    "name",
				Handler: "module",
				Inputs: []InputSpec{
					{Name: "text", Type: InputTypeString, Required: true, Rest: true},
				},
			},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.cmd.Validate()

			if tt.expErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Errorf("expected error containing %q, got nil", tt.expErr)
				return
			}

			if err.Error() != tt.expErr {
				t.Errorf("error = %q, expected %q", err.Error(), tt.expErr)
			}
		})
	}
}

func TestCommand_Usage(t *testing.T) {
	cmd := Command{
		Name: "copy",
		Inputs: []InputSpec{
			{Name: "kind", Type: InputTypeKind, Required: true},
			{Name: "from", Type: InputTypeVnum, Required: true},
			{Name: "to", Type: InputTypeVnum, Required: true, AllowNew: true},
			{Name: "note", Type: InputTypeString},
		},
	}

	testutil.AssertEqual(t, "usage", cmd.Usage(), "copy <kind> <from> <to|new> [note]")
}
