package command

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// FlagSpec is a parsed flag notation.
type FlagSpec struct {
	Long  string
	Short string
	Value string
}

// ParseFlag parses "-b, --branch <branch>", "--force" or "-f, --force".
func ParseFlag(spec string) (FlagSpec, error) {
	var fs FlagSpec
	for _, token := range strings.Fields(strings.ReplaceAll(spec, ",", " ")) {
		switch {
		case strings.HasPrefix(token, "--"):
			if fs.Long != "" || len(token) < 3 {
				return FlagSpec{}, fmt.Errorf("invalid flag %q: bad long form %q", spec, token)
			}
			fs.Long = token[2:]
		case strings.HasPrefix(token, "-"):
			if fs.Short != "" || len(token) != 2 {
				return FlagSpec{}, fmt.Errorf("invalid flag %q: bad short form %q", spec, token)
			}
			fs.Short = token[1:]
		case strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">"),
			strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]"):
			fs.Value = token[1 : len(token)-1]
		default:
			return FlagSpec{}, fmt.Errorf("invalid flag %q: unexpected %q", spec, token)
		}
	}

	if fs.Long == "" {
		return FlagSpec{}, fmt.Errorf("invalid flag %q: a long form is required", spec)
	}
	return fs, nil
}

// Pattern is a parsed command name such as "new <name> [dir]".
type Pattern struct {
	Command  string
	Required []string
	Optional []string
	Variadic bool
}

// ParsePattern parses a command name pattern. Required arguments use <x>,
// optional ones [x], and the last one may be variadic: <x...> or [x...].
func ParsePattern(name string) (Pattern, error) {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return Pattern{}, fmt.Errorf("empty command name")
	}

	p := Pattern{Command: fields[0]}
	if strings.ContainsAny(p.Command, "<>[]") {
		return Pattern{}, fmt.Errorf("invalid command name %q", name)
	}

	for i, token := range fields[1:] {
		if p.Variadic {
			return Pattern{}, fmt.Errorf("invalid command name %q: only the last argument can be variadic", name)
		}

		var required bool
		switch {
		case strings.HasPrefix(token, "<") && strings.HasSuffix(token, ">"):
			required = true
		case strings.HasPrefix(token, "[") && strings.HasSuffix(token, "]"):
		default:
			return Pattern{}, fmt.Errorf("invalid command name %q: bad argument %q", name, token)
		}

		arg := token[1 : len(token)-1]
		if strings.HasSuffix(arg, "...") {
			arg = strings.TrimSuffix(arg, "...")
			p.Variadic = true
		}
		if arg == "" {
			return Pattern{}, fmt.Errorf("invalid command name %q: empty argument at position %d", name, i+1)
		}

		if required {
			if len(p.Optional) > 0 {
				return Pattern{}, fmt.Errorf("invalid command name %q: required argument %q follows an optional one", name, arg)
			}
			p.Required = append(p.Required, arg)
		} else {
			p.Optional = append(p.Optional, arg)
		}
	}

	return p, nil
}

// Names returns the argument names in declaration order.
func (p Pattern) Names() []string {
	return append(append([]string{}, p.Required...), p.Optional...)
}

// PositionalArgs returns the cobra validator matching the pattern.
func (p Pattern) PositionalArgs() cobra.PositionalArgs {
	if p.Variadic {
		return cobra.MinimumNArgs(len(p.Required))
	}
	return cobra.RangeArgs(len(p.Required), len(p.Required)+len(p.Optional))
}
