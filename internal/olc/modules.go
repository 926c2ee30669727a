package olc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-olc/internal/commands"
	"github.com/pixil98/go-olc/internal/display"
	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// module changes one field of a buffer and returns the message to show.
type module func(e *Editor, p game.Prototype, args string) (string, error)

func typed[T game.Prototype](fn func(e *Editor, t T, args string) (string, error)) module {
	return func(e *Editor, p game.Prototype, args string) (string, error) {
		t, ok := p.(T)
		if !ok {
			return "", fmt.Errorf("module for %T used on a %s", t, p.Kind())
		}
		return fn(e, t, args)
	}
}

func nextWord(args string) (string, string) {
	args = strings.TrimSpace(args)
	word, rest, _ := strings.Cut(args, " ")
	return word, strings.TrimSpace(rest)
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, commands.NewUserErrorf("%q is not a valid number.", s)
	}
	return n, nil
}

func parseVnum(s string) (storage.Vnum, error) {
	v, err := storage.ParseVnum(s)
	if err != nil {
		return storage.Nothing, commands.NewUserErrorf("%q is not a valid vnum.", s)
	}
	return v, nil
}

func parseFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, commands.NewUserErrorf("%q is not a valid number.", s)
	}
	return f, nil
}

// parseIndex reads a 1-based list position.
func parseIndex(s string, n int) (int, error) {
	i, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if i < 1 || i > n {
		if n == 0 {
			return 0, commands.NewUserError("The list is empty.")
		}
		return 0, commands.NewUserErrorf("Choose a number from 1 to %d.", n)
	}
	return i - 1, nil
}

func userErr(err error) error {
	return commands.NewUserError(display.Capitalize(err.Error()) + ".")
}

func (e *Editor) exists(kind game.Kind, vnum storage.Vnum) bool {
	_, ok := e.dict.Lookup(kind, vnum)
	return ok
}

// textModule sets a one-line string.
func textModule[T game.Prototype](label string, field func(T) *string) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		*field(t) = strings.TrimSpace(args)
		if *field(t) == "" {
			return fmt.Sprintf("%s cleared.", label), nil
		}
		return fmt.Sprintf("%s set to: %s", label, *field(t)), nil
	})
}

// descModule sets a description. Stored descriptions end in a line break.
func descModule[T game.Prototype](label string, field func(T) *string) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		text := strings.TrimSpace(args)
		if text == "" {
			*field(t) = ""
			return fmt.Sprintf("%s cleared.", label), nil
		}
		*field(t) = text + "\r\n"
		return fmt.Sprintf("%s set.", label), nil
	})
}

// flagsModule toggles each named flag, or shows the current set when no
// names are given. Nothing changes unless every name parses.
func flagsModule[T game.Prototype](label string, names game.FlagNames, field func(T) *game.Flags) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		words := strings.Fields(args)
		if len(words) == 0 {
			return fmt.Sprintf("%s: %s", label, names.Describe(*field(t))), nil
		}

		var toggle game.Flags
		for _, w := range words {
			f, err := names.Parse(w)
			if err != nil {
				return "", userErr(err)
			}
			toggle ^= f
		}
		*field(t) ^= toggle
		return fmt.Sprintf("%s now: %s", label, names.Describe(*field(t))), nil
	})
}

func intModule[T game.Prototype](label string, lo, hi int, field func(T) *int) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		n, err := parseInt(strings.TrimSpace(args))
		if err != nil {
			return "", err
		}
		if n < lo || n > hi {
			return "", commands.NewUserErrorf("%s must be from %d to %d.", label, lo, hi)
		}
		*field(t) = n
		return fmt.Sprintf("%s set to %d.", label, n), nil
	})
}

func percentModule[T game.Prototype](label string, field func(T) *float64) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		f, err := parseFloat(strings.TrimSpace(args))
		if err != nil {
			return "", err
		}
		if f < 0 || f > 100 {
			return "", commands.NewUserErrorf("%s must be from 0 to 100.", label)
		}
		*field(t) = f
		return fmt.Sprintf("%s set to %.2f%%.", label, f), nil
	})
}

// levelsModule sets a min/max pair. A max of 0 means no limit.
func levelsModule[T game.Prototype](min, max func(T) *int) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		loArg, hiArg := nextWord(args)
		if loArg == "" || hiArg == "" {
			return "", commands.NewUserError("Usage: levels <min> <max>")
		}
		lo, err := parseInt(loArg)
		if err != nil {
			return "", err
		}
		hi, err := parseInt(hiArg)
		if err != nil {
			return "", err
		}
		if lo < 0 || hi < 0 {
			return "", commands.NewUserError("Levels can't be negative.")
		}
		*min(t), *max(t) = lo, hi
		return fmt.Sprintf("Levels set to %d-%d.", lo, hi), nil
	})
}

func typeModule[T game.Prototype](label string, names game.TypeNames, set func(T, int)) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		v, err := names.Parse(strings.TrimSpace(args))
		if err != nil {
			return "", userErr(err)
		}
		set(t, v)
		return fmt.Sprintf("%s set to %s.", label, names.Name(v)), nil
	})
}

// vnumListModule handles "add <vnum>" and "remove <vnum>" on a vnum list.
// A non-empty target kind requires the vnum to exist there.
func vnumListModule[T game.Prototype](label string, target game.Kind, list func(T) *game.Vnums) module {
	return typed(func(e *Editor, t T, args string) (string, error) {
		op, arg := nextWord(args)
		v, err := parseVnum(arg)
		if err != nil {
			return "", err
		}
		l := list(t)
		switch op {
		case "add":
			if target != "" && !e.exists(target, v) {
				return "", commands.NewUserErrorf("There is no %s with that vnum.", target)
			}
			if l.Has(v) {
				return "", commands.NewUserErrorf("%d is already listed.", v)
			}
			*l = append(*l, v)
			return fmt.Sprintf("Added %s %d.", label, v), nil
		case "remove":
			if !l.Remove(v) {
				return "", commands.NewUserErrorf("%d isn't listed.", v)
			}
			return fmt.Sprintf("Removed %s %d.", label, v), nil
		}
		return "", commands.NewUserErrorf("Usage: %s add|remove <vnum>", label)
	})
}

func removeAt[S ~[]E, E any](list *S, arg, label string) (string, error) {
	i, err := parseIndex(arg, len(*list))
	if err != nil {
		return "", err
	}
	*list = append((*list)[:i:i], (*list)[i+1:]...)
	return fmt.Sprintf("Removed %s %d.", label, i+1), nil
}

// resource reads "<type> <vnum> <amount>".
func parseResource(e *Editor, args string) (game.Resource, error) {
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return game.Resource{}, commands.NewUserError("Usage: <type> <vnum> <amount>")
	}
	rt, err := game.ResourceTypeNames.Parse(fields[0])
	if err != nil {
		return game.Resource{}, userErr(err)
	}
	v, err := parseVnum(fields[1])
	if err != nil {
		return game.Resource{}, err
	}
	amount, err := parseInt(fields[2])
	if err != nil {
		return game.Resource{}, err
	}
	if amount < 1 {
		return game.Resource{}, commands.NewUserError("Amount must be at least 1.")
	}

	r := game.Resource{Type: game.ResourceType(rt), Vnum: v, Amount: amount}
	if gt, ok := r.Type.Generic(); ok {
		if _, found := e.dict.FindGeneric(v, gt); !found {
			return game.Resource{}, commands.NewUserErrorf("There is no %s generic with that vnum.", game.GenericTypeNames.Name(int(gt)))
		}
	} else if r.Type == game.ResourceObject && !e.exists(game.KindObject, v) {
		return game.Resource{}, commands.NewUserError("There is no object with that vnum.")
	}
	return r, nil
}

func resourcesModule[T game.Prototype](label string, list func(T) *game.Resources) module {
	return typed(func(e *Editor, t T, args string) (string, error) {
		op, rest := nextWord(args)
		switch op {
		case "add":
			r, err := parseResource(e, rest)
			if err != nil {
				return "", err
			}
			*list(t) = append(*list(t), r)
			return fmt.Sprintf("Added %s: %dx %s %d.", label, r.Amount, game.ResourceTypeNames.Name(int(r.Type)), r.Vnum), nil
		case "remove":
			return removeAt(list(t), rest, label)
		}
		return "", commands.NewUserErrorf("Usage: %s add <type> <vnum> <amount> | remove <number>", label)
	})
}

// iconsModule handles "add <icon> [season]" and "remove <number>".
func iconsModule[T game.Prototype](list func(T) *game.Icons) module {
	return typed(func(_ *Editor, t T, args string) (string, error) {
		op, rest := nextWord(args)
		switch op {
		case "add":
			icon, season := nextWord(rest)
			if icon == "" {
				return "", commands.NewUserError("Usage: icon add <icon> [season]")
			}
			if w := game.IconWidth(icon); w != game.BuildingIconWidth {
				return "", commands.NewUserErrorf("Icons must be %d characters wide, not %d.", game.BuildingIconWidth, w)
			}
			*list(t) = append(*list(t), game.Icon{Icon: icon, Season: season})
			return fmt.Sprintf("Added icon %s.", icon), nil
		case "remove":
			return removeAt(list(t), rest, "icon")
		}
		return "", commands.NewUserError("Usage: icon add <icon> [season] | remove <number>")
	})
}
