// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/smoothjs/smooth-cli/internal/logger"
	"github.com/stretchr/testify/require"
)

// Quiet silences the application logger for the duration of the test.
func Quiet(t *testing.T) {
	t.Helper()
	logger.SetTestMode(true)
	t.Cleanup(logger.Reset)
}

// WriteFile writes content to dir/name, creating parent directories.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// ReadFile returns the content of dir/name.
func ReadFile(t *testing.T, dir, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err)
	return string(content)
}

// Project creates a temporary directory holding a package.json with the
// given dependencies and returns its path.
func Project(t *testing.T, deps map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	content, err := json.Marshal(map[string]interface{}{"dependencies": deps})
	require.NoError(t, err)
	WriteFile(t, dir, "package.json", string(content))
	return dir
}

// SmoothProject creates a project that depends on @smoothjs/smooth.
func SmoothProject(t *testing.T) string {
	t.Helper()
	return Project(t, map[string]string{"@smoothjs/smooth": "0.2.1"})
}

// Call records one invocation made through a Runner.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String renders the call the way it would be typed in a shell.
func (c Call) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// FakeRunner records commands instead of executing them. Fail maps a
// command line prefix to the error returned for it; OnRun runs after
// recording, which lets tests create the files a real command would.
type FakeRunner struct {
	mu    sync.Mutex
	Calls []Call
	Fail  map[string]error
	OnRun func(call Call)
}

// Run implements shell.Runner.
func (r *FakeRunner) Run(_ context.Context, dir, name string, args ...string) error {
	call := Call{Dir: dir, Name: name, Args: args}

	r.mu.Lock()
	r.Calls = append(r.Calls, call)
	r.mu.Unlock()

	for prefix, err := range r.Fail {
		if strings.HasPrefix(call.String(), prefix) {
			return err
		}
	}
	if r.OnRun != nil {
		r.OnRun(call)
	}
	return nil
}
