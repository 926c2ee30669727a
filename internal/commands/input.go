package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pixil98/go-olc/internal/game"
	"github.com/pixil98/go-olc/internal/storage"
)

// NewVnum is the parsed value of a vnum input given as "new".
const NewVnum = storage.Nothing

// parseInputs validates raw words against input specs and returns the parsed
// values keyed by input name. Missing optional inputs are absent from the map.
func parseInputs(specs []InputSpec, rawArgs []string) (map[string]any, error) {
	requiredCount := 0
	for _, spec := range specs {
		if spec.Required {
			requiredCount++
		}
	}

	if len(rawArgs) < requiredCount {
		return nil, NewUserErrorf("Expected at least %d argument(s), got %d.", requiredCount, len(rawArgs))
	}

	// If no rest input, check we don't have too many args
	hasRest := len(specs) > 0 && specs[len(specs)-1].Rest
	if !hasRest && len(rawArgs) > len(specs) {
		return nil, NewUserErrorf("Expected at most %d argument(s), got %d.", len(specs), len(rawArgs))
	}

	inputs := make(map[string]any, len(specs))
	argIndex := 0

	for _, spec := range specs {
		if argIndex >= len(rawArgs) {
			if spec.Required {
				return nil, NewUserErrorf("Missing required parameter: %s.", spec.Name)
			}
			continue
		}

		var raw string
		if spec.Rest {
			raw = strings.Join(rawArgs[argIndex:], " ")
			argIndex = len(rawArgs)
		} else {
			raw = rawArgs[argIndex]
			argIndex++
		}

		value, err := parseValue(spec, raw)
		if err != nil {
			return nil, err
		}
		inputs[spec.Name] = value
	}

	return inputs, nil
}

func parseValue(spec InputSpec, raw string) (any, error) {
	switch spec.Type {
	case InputTypeString:
		return raw, nil

	case InputTypeNumber:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, NewUserErrorf("%q is not a valid number.", raw)
		}
		return n, nil

	case InputTypeVnum:
		if spec.AllowNew && strings.EqualFold(raw, "new") {
			return NewVnum, nil
		}
		v, err := storage.ParseVnum(raw)
		if err != nil {
			return nil, NewUserErrorf("%q is not a valid vnum.", raw)
		}
		return v, nil

	case InputTypeKind:
		k, err := game.ParseKind(raw)
		if err != nil {
			return nil, NewUserErrorf("%s.", capitalize(err.Error()))
		}
		return k, nil

	default:
		return nil, fmt.Errorf("unknown input type %q", spec.Type)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
