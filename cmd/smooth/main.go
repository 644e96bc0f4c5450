package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/smoothjs/smooth-cli/internal/command"
	"github.com/smoothjs/smooth-cli/internal/commands"
	"github.com/smoothjs/smooth-cli/internal/config"
	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/smoothjs/smooth-cli/internal/templates"
	"github.com/smoothjs/smooth-cli/internal/version"
	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	cfg, err := config.Load(cwd)
	if err != nil {
		return err
	}

	registry := command.NewRegistry("smooth", "SmoothJS command-line interface", version.String())

	root := registry.Root()
	var verbose bool
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print debug logs")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		logger.Configure(verbose)
	}

	err = registry.Register(
		commands.NewApplicationCommand(cwd, cfg),
		&commands.MakeCommand{Base: cwd, Config: cfg, Templates: templates.FS()},
		&commands.InitCommand{Base: cwd},
	)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return registry.Execute(ctx, os.Args[1:])
}
