package commands

import (
	"errors"

	"github.com/smoothjs/smooth-cli/internal/command"
	"github.com/smoothjs/smooth-cli/internal/config"
	"github.com/smoothjs/smooth-cli/internal/logger"
)

// InitCommand writes the CLI configuration file.
type InitCommand struct {
	Base string
}

// Commands implements command.Set.
func (i *InitCommand) Commands() []*command.Definition {
	return []*command.Definition{
		command.New("init").
			Describe("Create a smooth.yaml file with the default settings.").
			Option(0, command.Option{
				Name:        "force",
				Flag:        "-f, --force",
				Description: "Replace an existing smooth.yaml.",
			}).
			Handle(i.Init),
	}
}

// Init writes smooth.yaml into Base.
func (i *InitCommand) Init(force bool) error {
	path, err := config.WriteDefault(i.Base, force)
	if errors.Is(err, config.ErrExists) {
		logger.Warning("%s already exists. Use --force to replace it.", path)
		return nil
	}
	if err != nil {
		return err
	}

	logger.Create(path)
	logger.Success("Configuration written to %s", path)
	return nil
}
