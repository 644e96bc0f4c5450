// Package scaffold generates SmoothJS source files for the make commands.
package scaffold

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/smoothjs/smooth-cli/internal/config"
	"github.com/smoothjs/smooth-cli/internal/filesystem"
	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/smoothjs/smooth-cli/internal/naming"
	"github.com/smoothjs/smooth-cli/internal/validate"
)

// Generator renders artifacts into the project containing its base directory.
type Generator struct {
	base      string
	templates fs.FS
	cfg       *config.Config
}

// NewGenerator returns a generator working from base, the directory the
// command was run in.
func NewGenerator(base string, templates fs.FS, cfg *config.Config) *Generator {
	if cfg == nil {
		cfg = config.Defaults()
	}
	return &Generator{base: base, templates: templates, cfg: cfg}
}

// Generate renders the template of kind for name and returns the path of the
// file relative to base. An existing file is left untouched unless force is
// set; in that case the returned path is empty.
func (g *Generator) Generate(kindName, name string, force bool) (string, error) {
	kind, err := Lookup(kindName)
	if err != nil {
		return "", err
	}
	if err := validate.ArtifactName(name); err != nil {
		return "", err
	}

	fsys := filesystem.New(g.base, g.templates).WithFramework(g.cfg.FrameworkDependency)
	if err := fsys.CdProjectRootDir(); err != nil {
		return "", err
	}

	root := g.rootDir(fsys, kind)
	fsys.Cd(root)

	base, subdir := path.Base(name), path.Dir(name)
	if !kind.Nested {
		// Only the last segment is used.
		subdir = "."
	}

	names := naming.From(base)
	fileName := names.KebabName + kind.Suffix

	if err := fsys.EnsureDir(subdir); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", kind.Name, err)
	}
	fsys.Cd(subdir)

	target := filepath.Join(fsys.CurrentDir, fileName)
	if fsys.Exists(fileName) && !force {
		logger.Warning("The file %q already exists. Use --force to overwrite it.", target)
		return "", nil
	}

	logger.Debug("rendering artifact", "kind", kind.Name, "template", kind.Template, "dest", target)
	if err := fsys.Render(kind.Template, fileName, names.Locals()); err != nil {
		return "", fmt.Errorf("failed to generate %s %s: %w", kind.Name, name, err)
	}
	return target, nil
}

// rootDir returns the first configured directory that exists in the project,
// or the project root itself.
func (g *Generator) rootDir(fsys *filesystem.FileSystem, kind Kind) string {
	for _, dir := range g.cfg.Directories[kind.Name] {
		if fsys.Exists(dir) {
			return dir
		}
	}
	return ""
}
