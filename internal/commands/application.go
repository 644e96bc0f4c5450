// Package commands holds the command sets exposed by the smooth binary.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/smoothjs/smooth-cli/internal/blueprint"
	"github.com/smoothjs/smooth-cli/internal/command"
	"github.com/smoothjs/smooth-cli/internal/config"
	"github.com/smoothjs/smooth-cli/internal/filesystem"
	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/smoothjs/smooth-cli/internal/naming"
	"github.com/smoothjs/smooth-cli/internal/shell"
	"github.com/smoothjs/smooth-cli/internal/validate"
)

// Resolver turns a blueprint reference into a fetcher.
type Resolver func(ref, branch string, runner shell.Runner) (blueprint.Fetcher, error)

// ApplicationCommand creates new applications from a blueprint.
type ApplicationCommand struct {
	// Base is the directory the application folder is created in.
	Base    string
	Config  *config.Config
	Runner  shell.Runner
	Resolve Resolver
}

// NewApplicationCommand wires the command with the real git and package
// manager processes.
func NewApplicationCommand(base string, cfg *config.Config) *ApplicationCommand {
	return &ApplicationCommand{
		Base:    base,
		Config:  cfg,
		Runner:  shell.ExecRunner{},
		Resolve: blueprint.Resolve,
	}
}

// Commands implements command.Set.
func (a *ApplicationCommand) Commands() []*command.Definition {
	cfg := a.config()
	return []*command.Definition{
		command.New("new <name>").
			Describe("Create a new SmoothJS application.").
			Argument("name", "Application's folder.").
			Option(1, command.Option{
				Name:        "branch",
				Flag:        "-b, --branch <branch>",
				Description: "Clone a specific branch.",
				Default:     cfg.Branch,
			}).
			Option(2, command.Option{
				Name:        "blueprint",
				Flag:        "-r, --blueprint <blueprint>",
				Description: "A github repository (owner/repo), a git url or an azblob:// location.",
				Default:     cfg.Blueprint,
			}).
			Option(3, command.Option{
				Name:        "autoInstall",
				Flag:        "-a, --auto-install",
				Description: "Auto install npm dependencies.",
				Default:     cfg.AutoInstall,
			}).
			Args(4).
			Handle(a.Create),
	}
}

func (a *ApplicationCommand) config() *config.Config {
	if a.Config == nil {
		return config.Defaults()
	}
	return a.Config
}

// Create clones the blueprint into a folder named after the kebab-cased
// application name and optionally installs its dependencies.
func (a *ApplicationCommand) Create(ctx context.Context, branch, ref string, autoInstall bool, args []string) error {
	name := args[0]
	if err := validate.AppName(name); err != nil {
		return err
	}

	names := naming.From(name)
	fsys := filesystem.New(a.Base, nil)

	if fsys.Exists(names.KebabName) {
		logger.Error("The target directory %q already exists.", names.KebabName)
		return nil
	}

	logger.Info("📂 Creating files...")

	fetcher, err := a.Resolve(ref, branch, a.Runner)
	if err != nil {
		return err
	}
	logger.Debug("fetching blueprint", "blueprint", ref, "branch", branch, "dest", fsys.Path(names.KebabName))
	if err := fetcher.Fetch(ctx, fsys.Path(names.KebabName)); err != nil {
		// The directory did not exist before the fetch.
		if rmErr := os.RemoveAll(fsys.Path(names.KebabName)); rmErr != nil {
			logger.Debug("failed to remove partial blueprint", "dest", fsys.Path(names.KebabName), "err", rmErr)
		}
		return fmt.Errorf("unable to clone %s: %w", ref, err)
	}

	if autoInstall {
		pm := a.config().PackageManager
		if pm == "" {
			pm = shell.DetectPackageManager(ctx, a.Runner)
		}

		spinner := logger.StartSpinner(fmt.Sprintf("📦 Installing dependencies (%s)...", pm))
		success := shell.Install(ctx, a.Runner, pm, fsys.Path(names.KebabName))
		spinner.Stop()

		if !success {
			logger.Log("❗ Installing dependencies (%s)...", pm)
			logger.Error("A problem occurred during the installation of")
			logger.Log("the dependencies. Try installing them manually by running")
			logger.Log("the following commands:")
			logger.Command("cd %s", names.KebabName)
			logger.Command("%s install", pm)
			return nil
		}
		logger.Log("📦 Installing dependencies (%s)...", pm)
	}

	logger.Success("Project successfully created.")
	logger.Log("👉 Here are the next steps:")
	logger.Command("cd %s", names.KebabName)
	if !autoInstall {
		logger.Command("npm install")
	}
	logger.Command("npm run build")
	return nil
}
