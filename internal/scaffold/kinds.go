package scaffold

import (
	"fmt"
	"sort"
)

// Kind describes one artifact the make commands can generate.
type Kind struct {
	Name        string
	Description string
	Argument    string
	Template    string
	Suffix      string
	// Nested kinds honour a sub-directory in the requested name, e.g.
	// "admin/user" is written to <root>/admin/user.service.ts.
	Nested bool
}

var kinds = map[string]Kind{
	"controller": {
		Name:        "controller",
		Description: "Create a new HTTP Controller.",
		Argument:    "Controller class name.",
		Template:    "controller.empty.ts",
		Suffix:      ".controller.ts",
		Nested:      true,
	},
	"entity": {
		Name:        "entity",
		Description: "Create a new typeorm entity.",
		Argument:    "Entity class name.",
		Template:    "entity.empty.ts",
		Suffix:      ".entity.ts",
	},
	"hook": {
		Name:        "hook",
		Description: "Create a new hook.",
		Argument:    "Hook file name.",
		Template:    "hook.empty.ts",
		Suffix:      ".hook.ts",
	},
	"service": {
		Name:        "service",
		Description: "Create a application service.",
		Argument:    "Service class name.",
		Template:    "service.empty.ts",
		Suffix:      ".service.ts",
		Nested:      true,
	},
	"filter": {
		Name:        "filter",
		Description: "Create a HTTP exception filter.",
		Argument:    "Filter class name.",
		Template:    "filter.empty.ts",
		Suffix:      ".exception.filter.ts",
		Nested:      true,
	},
	"event": {
		Name:        "event",
		Description: "Create a HTTP event.",
		Argument:    "Event class name.",
		Template:    "event.empty.ts",
		Suffix:      ".event.ts",
		Nested:      true,
	},
	"listener": {
		Name:        "listener",
		Description: "Create a event listener.",
		Argument:    "Listener class name.",
		Template:    "listener.empty.ts",
		Suffix:      ".listener.ts",
		Nested:      true,
	},
}

// order is the order the make commands are listed in.
var order = []string{"controller", "entity", "hook", "service", "filter", "event", "listener"}

// Kinds returns every known kind in command order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(order))
	for _, name := range order {
		out = append(out, kinds[name])
	}
	return out
}

// Lookup returns the kind called name.
func Lookup(name string) (Kind, error) {
	kind, ok := kinds[name]
	if !ok {
		known := make([]string, 0, len(kinds))
		for k := range kinds {
			known = append(known, k)
		}
		sort.Strings(known)
		return Kind{}, fmt.Errorf("unknown artifact kind %q (expected one of %v)", name, known)
	}
	return kind, nil
}
