// Package shell runs the external programs the CLI depends on: git and the
// JavaScript package managers.
package shell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/smoothjs/smooth-cli/internal/logger"
)

// Runner runs a program in dir and waits for it.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// ExecRunner runs programs with os/exec. Output is discarded unless Stdout or
// Stderr are set; on failure the captured stderr is part of the error.
type ExecRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.Stdout

	var stderr bytes.Buffer
	if r.Stderr != nil {
		cmd.Stderr = io.MultiWriter(r.Stderr, &stderr)
	} else {
		cmd.Stderr = &stderr
	}

	logger.Debug("running command", "dir", dir, "cmd", name, "args", args)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

// DetectPackageManager returns "yarn" when it is installed, "npm" otherwise.
func DetectPackageManager(ctx context.Context, runner Runner) string {
	if err := runner.Run(ctx, "", "yarn", "--version"); err != nil {
		return "npm"
	}
	return "yarn"
}

// Install runs "<pm> install" in dir. Failures are reported only through the
// returned flag; the caller prints recovery instructions.
func Install(ctx context.Context, runner Runner, packageManager, dir string) bool {
	if err := runner.Run(ctx, dir, packageManager, "install"); err != nil {
		logger.Debug("dependency installation failed", "pm", packageManager, "err", err)
		return false
	}
	return true
}
