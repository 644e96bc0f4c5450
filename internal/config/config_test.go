package config

import (
	"path/filepath"
	"testing"

	"github.com/smoothjs/smooth-cli/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())

	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "smooth.yaml", `blueprint: acme/smooth-starter
branch: main
auto_install: false
package_manager: yarn
directories:
  controller:
    - src/controllers
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "acme/smooth-starter", cfg.Blueprint)
	assert.Equal(t, "main", cfg.Branch)
	assert.False(t, cfg.AutoInstall)
	assert.Equal(t, "yarn", cfg.PackageManager)
	assert.Equal(t, []string{"src/controllers"}, cfg.Directories["controller"])
	assert.Equal(t, []string{"app/services", "services"}, cfg.Directories["service"])
	assert.Equal(t, "@smoothjs/smooth", cfg.FrameworkDependency)
}

func TestLoadHCL(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "smooth.hcl", `
branch          = "develop"
auto_install    = false
package_manager = "pnpm"
directories = {
  service = ["src/services"]
}
`)

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Branch)
	assert.False(t, cfg.AutoInstall)
	assert.Equal(t, "pnpm", cfg.PackageManager)
	assert.Equal(t, []string{"src/services"}, cfg.Directories["service"])
	assert.Equal(t, []string{"app/controllers", "controllers"}, cfg.Directories["controller"])
	assert.Equal(t, "smoothjs/smooth-app", cfg.Blueprint)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "smooth.yaml", "branch: main\n")
	t.Setenv("SMOOTH_BRANCH", "release")
	t.Setenv("SMOOTH_AUTO_INSTALL", "false")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "release", cfg.Branch)
	assert.False(t, cfg.AutoInstall)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	testCases := []struct {
		name        string
		file        string
		content     string
		errContains string
	}{
		{
			name:        "unknown package manager",
			file:        "smooth.yaml",
			content:     "package_manager: bun\n",
			errContains: "package_manager must be npm, yarn or pnpm",
		},
		{
			name:        "absolute directory",
			file:        "smooth.yaml",
			content:     "directories:\n  hook:\n    - /etc/hooks\n",
			errContains: "must be relative to the project root",
		},
		{
			name:        "malformed yaml",
			file:        "smooth.yaml",
			content:     "branch: [\n",
			errContains: "failed to read",
		},
		{
			name:        "malformed hcl",
			file:        "smooth.hcl",
			content:     "branch = \n",
			errContains: "failed to parse",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			testutil.WriteFile(t, dir, tc.file, tc.content)

			_, err := Load(dir)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errContains)
		})
	}
}

func TestWriteDefault(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteDefault(dir, false)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "smooth.yaml"), path)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)

	_, err = WriteDefault(dir, false)
	assert.ErrorIs(t, err, ErrExists)

	_, err = WriteDefault(dir, true)
	assert.NoError(t, err)
}
