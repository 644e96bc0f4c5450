// Package templates embeds the SmoothJS source templates rendered by the make
// commands. Placeholders have the form /* key */.
package templates

import (
	"embed"
	"io/fs"
	"sort"
)

//go:embed files/*
var templateFS embed.FS

// FS returns the templates rooted at the template directory, so that
// "controller.empty.ts" resolves directly.
func FS() fs.FS {
	sub, err := fs.Sub(templateFS, "files")
	if err != nil {
		panic(err)
	}
	return sub
}

// Names lists the embedded template file names.
func Names() []string {
	entries, err := fs.ReadDir(templateFS, "files")
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}
