package commands

import (
	"io/fs"

	"github.com/smoothjs/smooth-cli/internal/command"
	"github.com/smoothjs/smooth-cli/internal/config"
	"github.com/smoothjs/smooth-cli/internal/filesystem"
	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/smoothjs/smooth-cli/internal/scaffold"
)

// MakeCommand provides one make:<kind> command per artifact kind.
type MakeCommand struct {
	Base      string
	Config    *config.Config
	Templates fs.FS
}

// Commands implements command.Set.
func (m *MakeCommand) Commands() []*command.Definition {
	var defs []*command.Definition
	for _, kind := range scaffold.Kinds() {
		kind := kind
		defs = append(defs, command.New("make:"+kind.Name+" <name>").
			Describe(kind.Description).
			Argument("name", kind.Argument).
			Args(0).
			Option(1, command.Option{
				Name:        "force",
				Flag:        "-f, --force",
				Description: "Overwrite the file if it already exists.",
			}).
			Handle(func(args []string, force bool) error {
				return m.Make(kind.Name, args[0], force)
			}))
	}
	return defs
}

// Make generates one artifact.
func (m *MakeCommand) Make(kind, name string, force bool) error {
	cfg, err := m.projectConfig()
	if err != nil {
		return err
	}
	_, err = scaffold.NewGenerator(m.Base, m.Templates, cfg).Generate(kind, name, force)
	return err
}

// projectConfig prefers the configuration file of the project root when the
// command runs from one of its sub-directories.
func (m *MakeCommand) projectConfig() (*config.Config, error) {
	cfg := m.Config
	if cfg == nil {
		cfg = config.Defaults()
	}

	fsys := filesystem.New(m.Base, nil).WithFramework(cfg.FrameworkDependency)
	if err := fsys.CdProjectRootDir(); err != nil {
		return nil, err
	}
	if fsys.CurrentDir == "" || !config.HasFile(fsys.Path(".")) {
		return cfg, nil
	}

	logger.Debug("loading project configuration", "dir", fsys.Path("."))
	return config.Load(fsys.Path("."))
}
