// Package command records command metadata against handler functions and
// binds it onto a cobra command tree.
//
// A Definition plays the role of a decorated method: it carries the command
// name pattern, a description, argument descriptions and an ordered list of
// parameter bindings. At run time the registry rebuilds the handler's
// argument list by index from the parsed flags and positional arguments and
// calls the handler through reflection.
package command

// ParamKind selects where a handler parameter takes its value from.
type ParamKind int

const (
	// KindOption binds a named flag.
	KindOption ParamKind = iota
	// KindArgs binds the raw positional arguments as a []string.
	KindArgs
)

var paramKinds = []ParamKind{KindOption, KindArgs}

func (k ParamKind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindArgs:
		return "args"
	default:
		return "unknown"
	}
}

// Option describes a flag. Flag uses the "-b, --branch <branch>" notation;
// the value placeholder is informational, the flag's type comes from the
// handler parameter it is bound to.
type Option struct {
	// Name identifies the option in debug logs and must be unique within a
	// command.
	Name        string
	Flag        string
	Description string
	Default     interface{}
	Required    bool
}

// Param binds one handler parameter, by index, to a value source.
type Param struct {
	Index  int
	Option *Option
}

// Definition is the metadata attached to one handler.
type Definition struct {
	Name        string
	Description string
	Arguments   map[string]string
	Params      map[ParamKind][]Param
	Handler     interface{}
}

// New starts a definition for the name pattern, e.g. "make:service <name>".
func New(name string) *Definition {
	return &Definition{
		Name:   name,
		Params: make(map[ParamKind][]Param),
	}
}

// Describe sets the human description.
func (d *Definition) Describe(description string) *Definition {
	d.Description = description
	return d
}

// Argument documents a positional argument of the name pattern.
func (d *Definition) Argument(name, description string) *Definition {
	if d.Arguments == nil {
		d.Arguments = make(map[string]string)
	}
	d.Arguments[name] = description
	return d
}

// Option binds handler parameter index to a flag.
func (d *Definition) Option(index int, opt Option) *Definition {
	d.Params[KindOption] = append(d.Params[KindOption], Param{Index: index, Option: &opt})
	return d
}

// Args binds handler parameter index to the positional arguments.
func (d *Definition) Args(index int) *Definition {
	d.Params[KindArgs] = append(d.Params[KindArgs], Param{Index: index})
	return d
}

// Handle sets the function invoked when the command runs. It must be a func;
// the registry checks its signature against the bound parameters.
func (d *Definition) Handle(fn interface{}) *Definition {
	d.Handler = fn
	return d
}

// Set is a group of commands, typically the methods of one type.
type Set interface {
	Commands() []*Definition
}
