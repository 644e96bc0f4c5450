package command

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	errorType   = reflect.TypeOf((*error)(nil)).Elem()
	contextType = reflect.TypeOf((*context.Context)(nil)).Elem()
	argsType    = reflect.TypeOf([]string(nil))
)

// Registry binds command definitions onto a cobra root command.
type Registry struct {
	root     *cobra.Command
	commands map[string]*Definition
	order    []string
}

// NewRegistry creates a registry whose root command is called name.
func NewRegistry(name, short, version string) *Registry {
	return &Registry{
		root: &cobra.Command{
			Use:           name,
			Short:         short,
			Version:       version,
			SilenceUsage:  true,
			SilenceErrors: true,
		},
		commands: make(map[string]*Definition),
	}
}

// Root returns the root command, e.g. to add persistent flags.
func (r *Registry) Root() *cobra.Command {
	return r.root
}

// Definitions returns the registered definitions in registration order.
func (r *Registry) Definitions() []*Definition {
	defs := make([]*Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.commands[name])
	}
	return defs
}

// Register validates every definition of the sets and adds a subcommand for
// each. Nothing is added when any definition is invalid.
func (r *Registry) Register(sets ...Set) error {
	var cmds []*cobra.Command
	var defs []*Definition
	seen := make(map[string]bool)

	for _, set := range sets {
		for _, def := range set.Commands() {
			cmd, err := bind(def)
			if err != nil {
				return fmt.Errorf("failed to register command %q: %w", def.Name, err)
			}
			if _, exists := r.commands[cmd.Name()]; exists || seen[cmd.Name()] {
				return fmt.Errorf("failed to register command %q: %s is already registered", def.Name, cmd.Name())
			}
			seen[cmd.Name()] = true
			cmds = append(cmds, cmd)
			defs = append(defs, def)
		}
	}

	for i, cmd := range cmds {
		r.root.AddCommand(cmd)
		r.commands[cmd.Name()] = defs[i]
		r.order = append(r.order, cmd.Name())
		logger.Debug("registered command", "name", defs[i].Name)
	}
	return nil
}

// Execute parses argv (without the program name) and runs the matching handler.
func (r *Registry) Execute(ctx context.Context, argv []string) error {
	r.root.SetArgs(argv)
	return r.root.ExecuteContext(ctx)
}

// binding produces the value of one handler parameter at run time.
type binding func(cmd *cobra.Command, args []string) reflect.Value

func bind(def *Definition) (*cobra.Command, error) {
	pattern, err := ParsePattern(def.Name)
	if err != nil {
		return nil, err
	}

	fn := reflect.ValueOf(def.Handler)
	if fn.Kind() != reflect.Func {
		return nil, fmt.Errorf("handler must be a func, got %T", def.Handler)
	}
	ft := fn.Type()
	if ft.IsVariadic() {
		return nil, fmt.Errorf("handler must not be variadic")
	}
	switch {
	case ft.NumOut() == 0:
	case ft.NumOut() == 1 && ft.Out(0) == errorType:
	default:
		return nil, fmt.Errorf("handler must return nothing or a single error")
	}

	cmd := &cobra.Command{
		Use:   def.Name,
		Short: def.Description,
		Long:  longHelp(def, pattern),
		Args:  pattern.PositionalArgs(),
	}

	bindings := make([]binding, ft.NumIn())
	optionNames := make(map[int]string)
	for _, kind := range paramKinds {
		for _, param := range def.Params[kind] {
			if param.Index < 0 || param.Index >= ft.NumIn() {
				return nil, fmt.Errorf("%s parameter index %d is outside the handler signature (%d parameters)", kind, param.Index, ft.NumIn())
			}
			if bindings[param.Index] != nil {
				return nil, fmt.Errorf("parameter index %d is bound twice", param.Index)
			}

			target := ft.In(param.Index)
			switch kind {
			case KindArgs:
				if !argsType.ConvertibleTo(target) {
					return nil, fmt.Errorf("args parameter %d must be []string, got %s", param.Index, target)
				}
				bindings[param.Index] = func(_ *cobra.Command, args []string) reflect.Value {
					return reflect.ValueOf(append([]string{}, args...)).Convert(target)
				}
			case KindOption:
				if param.Option == nil || param.Option.Name == "" {
					return nil, fmt.Errorf("option parameter %d has no name", param.Index)
				}
				for _, name := range optionNames {
					if name == param.Option.Name {
						return nil, fmt.Errorf("option name %q is declared twice", name)
					}
				}
				optionNames[param.Index] = param.Option.Name

				b, err := defineFlag(cmd, param.Option, target)
				if err != nil {
					return nil, fmt.Errorf("option parameter %d: %w", param.Index, err)
				}
				bindings[param.Index] = b
			}
		}
	}

	for i := range bindings {
		if bindings[i] != nil {
			continue
		}
		target := ft.In(i)
		if target == contextType {
			bindings[i] = func(cmd *cobra.Command, _ []string) reflect.Value {
				ctx := cmd.Context()
				if ctx == nil {
					ctx = context.Background()
				}
				return reflect.ValueOf(&ctx).Elem()
			}
			continue
		}
		bindings[i] = func(*cobra.Command, []string) reflect.Value {
			return reflect.Zero(target)
		}
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		in := make([]reflect.Value, len(bindings))
		for i, b := range bindings {
			in[i] = b(cmd, args)
		}

		logger.Debug("dispatching command", append([]interface{}{"name", cmd.Name(), "args", args}, optionValues(optionNames, in)...)...)
		out := fn.Call(in)
		if len(out) == 1 && !out[0].IsNil() {
			return out[0].Interface().(error)
		}
		return nil
	}

	return cmd, nil
}

// optionValues returns name/value pairs of the bound options in parameter order.
func optionValues(names map[int]string, in []reflect.Value) []interface{} {
	var kv []interface{}
	for i := range in {
		if name, ok := names[i]; ok {
			kv = append(kv, name, in[i].Interface())
		}
	}
	return kv
}

func defineFlag(cmd *cobra.Command, opt *Option, target reflect.Type) (binding, error) {
	if opt == nil {
		return nil, fmt.Errorf("missing option metadata")
	}
	spec, err := ParseFlag(opt.Flag)
	if err != nil {
		return nil, err
	}

	// -h/--help are added by cobra at execution time.
	if spec.Long == "help" || spec.Short == "h" {
		return nil, fmt.Errorf("flag %q collides with the help flag", opt.Flag)
	}

	flags := cmd.Flags()
	if flags.Lookup(spec.Long) != nil || (spec.Short != "" && flags.ShorthandLookup(spec.Short) != nil) {
		return nil, fmt.Errorf("flag %q is declared twice", opt.Flag)
	}

	var ptr interface{}
	switch {
	case target.Kind() == reflect.String:
		def, ok := defaultAs[string](opt.Default)
		if !ok {
			return nil, fmt.Errorf("default %v of --%s is not a string", opt.Default, spec.Long)
		}
		ptr = flags.StringP(spec.Long, spec.Short, def, opt.Description)
	case target.Kind() == reflect.Bool:
		def, ok := defaultAs[bool](opt.Default)
		if !ok {
			return nil, fmt.Errorf("default %v of --%s is not a bool", opt.Default, spec.Long)
		}
		ptr = flags.BoolP(spec.Long, spec.Short, def, opt.Description)
	case target.Kind() == reflect.Int:
		def, ok := defaultAs[int](opt.Default)
		if !ok {
			return nil, fmt.Errorf("default %v of --%s is not an int", opt.Default, spec.Long)
		}
		ptr = flags.IntP(spec.Long, spec.Short, def, opt.Description)
	case target.Kind() == reflect.Slice && target.Elem().Kind() == reflect.String:
		def, ok := defaultAs[[]string](opt.Default)
		if !ok {
			return nil, fmt.Errorf("default %v of --%s is not a []string", opt.Default, spec.Long)
		}
		ptr = flags.StringSliceP(spec.Long, spec.Short, def, opt.Description)
	default:
		return nil, fmt.Errorf("unsupported option type %s for --%s", target, spec.Long)
	}

	if opt.Required {
		if err := cmd.MarkFlagRequired(spec.Long); err != nil {
			return nil, err
		}
	}

	value := reflect.ValueOf(ptr).Elem()
	return func(*cobra.Command, []string) reflect.Value {
		return value.Convert(target)
	}, nil
}

// defaultAs converts an option default to T; a nil default is T's zero value.
func defaultAs[T any](v interface{}) (T, bool) {
	var zero T
	if v == nil {
		return zero, true
	}
	t, ok := v.(T)
	return t, ok
}

func longHelp(def *Definition, pattern Pattern) string {
	if len(def.Arguments) == 0 {
		return def.Description
	}

	names := pattern.Names()
	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	var b strings.Builder
	b.WriteString(def.Description)
	b.WriteString("\n\nArguments:\n")
	for _, name := range names {
		if desc, ok := def.Arguments[name]; ok {
			fmt.Fprintf(&b, "  %-*s  %s\n", width, name, desc)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FlagSet exposes the flags declared for a registered command, mainly for help
// rendering and tests.
func (r *Registry) FlagSet(name string) *pflag.FlagSet {
	for _, cmd := range r.root.Commands() {
		if cmd.Name() == name {
			return cmd.Flags()
		}
	}
	return nil
}
