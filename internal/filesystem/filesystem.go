// Package filesystem generates and edits project files relative to a movable
// current directory cursor. Templates are read from an fs.FS and rendered by
// literal /* key */ substitution.
package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/smoothjs/smooth-cli/internal/logger"
)

// DefaultFramework is the dependency that marks a directory as a SmoothJS project.
const DefaultFramework = "@smoothjs/smooth"

// ClientError reports a problem with the user's project rather than with the tool.
type ClientError struct {
	Message string
}

func (e *ClientError) Error() string {
	return e.Message
}

func clientErrorf(format string, args ...interface{}) error {
	return &ClientError{Message: fmt.Sprintf(format, args...)}
}

// FileSystem performs file operations relative to Base joined with CurrentDir.
type FileSystem struct {
	// CurrentDir is the cursor, relative to the base directory. It is not
	// checked for existence until an operation uses it.
	CurrentDir string

	base      string
	templates fs.FS
	framework string
	logs      bool
}

// New returns a FileSystem rooted at base that reads templates from templates.
// An empty base means the process working directory.
func New(base string, templates fs.FS) *FileSystem {
	return &FileSystem{
		base:      base,
		templates: templates,
		framework: DefaultFramework,
		logs:      true,
	}
}

// WithFramework sets the dependency CdProjectRootDir requires in package.json.
func (f *FileSystem) WithFramework(name string) *FileSystem {
	if name != "" {
		f.framework = name
	}
	return f
}

// HideLogs stops CREATE and UPDATE lines from being printed.
func (f *FileSystem) HideLogs() *FileSystem {
	f.logs = false
	return f
}

// Cd moves the cursor. The path is joined onto the current cursor; the base
// directory itself is represented by the empty string.
func (f *FileSystem) Cd(path string) *FileSystem {
	f.CurrentDir = filepath.Join(f.CurrentDir, path)
	if f.CurrentDir == "." {
		f.CurrentDir = ""
	}
	return f
}

// Path resolves path against the base directory and the cursor.
func (f *FileSystem) Path(path string) string {
	return filepath.Join(f.base, f.CurrentDir, path)
}

// CdProjectRootDir moves the cursor up to the closest directory holding a
// package.json that depends on the framework.
func (f *FileSystem) CdProjectRootDir() error {
	for !f.Exists("package.json") {
		abs, err := filepath.Abs(f.Path("."))
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", f.Path("."), err)
		}
		if filepath.Dir(abs) == abs {
			return clientErrorf("this project is not a SmoothJS project: no package.json found")
		}
		f.Cd("..")
	}

	pkg, err := f.readPackageJSON()
	if err != nil {
		return err
	}

	if _, ok := pkg.Dependencies[f.framework]; !ok {
		return clientErrorf("this project is not a SmoothJS project: the dependency %s is missing in package.json", f.framework)
	}

	return nil
}

type packageJSON struct {
	Dependencies map[string]string `json:"dependencies"`
}

func (f *FileSystem) readPackageJSON() (*packageJSON, error) {
	content, err := os.ReadFile(f.Path("package.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to read package.json: %w", err)
	}

	var pkg packageJSON
	if err := json.Unmarshal(content, &pkg); err != nil {
		return nil, clientErrorf("the file package.json is not valid JSON: %v", err)
	}
	return &pkg, nil
}

// Exists reports whether a file or directory exists.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(f.Path(path))
	return err == nil
}

// EnsureDir creates the directory and any missing parents.
func (f *FileSystem) EnsureDir(path string) error {
	if err := os.MkdirAll(f.Path(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", path, err)
	}
	return nil
}

// EnsureDirOnlyIf calls EnsureDir when condition is true.
func (f *FileSystem) EnsureDirOnlyIf(condition bool, path string) error {
	if !condition {
		return nil
	}
	return f.EnsureDir(path)
}

// EnsureFile creates an empty file if none exists. Existing files are left untouched.
func (f *FileSystem) EnsureFile(path string) error {
	if f.Exists(path) {
		return nil
	}
	f.logCreate(path)
	if err := os.WriteFile(f.Path(path), nil, 0644); err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	return nil
}

func (f *FileSystem) readTemplate(src string) ([]byte, error) {
	if f.templates == nil {
		return nil, fmt.Errorf("cannot read template %q: no template source configured", src)
	}
	content, err := fs.ReadFile(f.templates, src)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("template %q does not exist", src)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", src, err)
	}
	return content, nil
}

// Copy writes the template src verbatim to dest.
func (f *FileSystem) Copy(src, dest string) error {
	content, err := f.readTemplate(src)
	if err != nil {
		return err
	}
	f.logCreate(dest)
	if err := os.WriteFile(f.Path(dest), content, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// CopyOnlyIf calls Copy when condition is true.
func (f *FileSystem) CopyOnlyIf(condition bool, src, dest string) error {
	if !condition {
		return nil
	}
	return f.Copy(src, dest)
}

// Render writes the template src to dest, replacing every "/* key */" with
// locals[key]. Keys are applied in sorted order.
func (f *FileSystem) Render(src, dest string, locals map[string]string) error {
	content, err := f.readTemplate(src)
	if err != nil {
		return err
	}

	f.logCreate(dest)
	if err := os.WriteFile(f.Path(dest), []byte(Substitute(string(content), locals)), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}
	return nil
}

// RenderOnlyIf calls Render when condition is true.
func (f *FileSystem) RenderOnlyIf(condition bool, src, dest string, locals map[string]string) error {
	if !condition {
		return nil
	}
	return f.Render(src, dest, locals)
}

// Substitute replaces "/* key */" placeholders in content.
func Substitute(content string, locals map[string]string) string {
	keys := make([]string, 0, len(locals))
	for key := range locals {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		content = strings.ReplaceAll(content, "/* "+key+" */", locals[key])
	}
	return content
}

// Modify rewrites the file at path with the result of fn.
func (f *FileSystem) Modify(path string, fn func(content string) string) error {
	if !f.Exists(path) {
		return clientErrorf("impossible to modify %q: the file does not exist", path)
	}

	content, err := os.ReadFile(f.Path(path))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	updated := fn(string(content))
	f.logUpdate(path)
	logger.DebugDiff(filepath.Join(f.CurrentDir, path), string(content), updated)

	if err := os.WriteFile(f.Path(path), []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// ModifyOnlyIf calls Modify when condition is true.
func (f *FileSystem) ModifyOnlyIf(condition bool, path string, fn func(content string) string) error {
	if !condition {
		return nil
	}
	return f.Modify(path, fn)
}

// ProjectHasDependency reports whether the project's package.json lists name
// as a dependency. The cursor is left where it was.
func (f *FileSystem) ProjectHasDependency(name string) (bool, error) {
	initial := f.CurrentDir
	defer func() { f.CurrentDir = initial }()

	if err := f.CdProjectRootDir(); err != nil {
		return false, err
	}

	pkg, err := f.readPackageJSON()
	if err != nil {
		return false, err
	}

	_, ok := pkg.Dependencies[name]
	return ok, nil
}

func (f *FileSystem) logCreate(path string) {
	if f.logs {
		logger.Create(filepath.Join(f.CurrentDir, path))
	}
}

func (f *FileSystem) logUpdate(path string) {
	if f.logs {
		logger.Update(filepath.Join(f.CurrentDir, path))
	}
}
