// Package blueprint fetches the starter project used by "new".
package blueprint

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/smoothjs/smooth-cli/internal/azure"
	"github.com/smoothjs/smooth-cli/internal/shell"
)

// Fetcher materialises a blueprint into dest, which must not exist yet.
type Fetcher interface {
	Fetch(ctx context.Context, dest string) error
}

var (
	gitURL    = regexp.MustCompile(`^(?:git|ssh|https?|git@[-\w.]+):(//)?(.*?)(\.git)(/?|#[-\d\w._]+?)$`)
	hostURL   = regexp.MustCompile(`^(?:https?|ssh|git)://(?:[\w.-]+@)?(?:www\.)?(?:github\.com|gitlab\.com|bitbucket\.org)/[\w.-]+/[\w.-]+/?$`)
	shorthand = regexp.MustCompile(`^[\w.-]+/[\w.-]+$`)
)

// IsGitURL reports whether raw looks like a clonable git URL: anything ending
// in .git, or a repository URL on a well-known git host.
func IsGitURL(raw string) bool {
	return gitURL.MatchString(raw) || hostURL.MatchString(raw)
}

// Resolve picks the fetcher for a blueprint reference: a git URL, an
// azblob:// location, or a GitHub "owner/repo" shorthand.
func Resolve(blueprint, branch string, runner shell.Runner) (Fetcher, error) {
	switch {
	case blueprint == "":
		return nil, fmt.Errorf("blueprint cannot be empty")
	case azure.IsURL(blueprint):
		return azure.NewFetcher(blueprint)
	case IsGitURL(blueprint):
		return &GitFetcher{URL: blueprint, Branch: branch, Runner: runner}, nil
	case shorthand.MatchString(blueprint):
		return &GitFetcher{URL: fmt.Sprintf("https://github.com/%s.git", blueprint), Branch: branch, Runner: runner}, nil
	default:
		return nil, fmt.Errorf("unsupported blueprint %q: use owner/repo, a git URL or %s<account>/<container>", blueprint, azure.Scheme)
	}
}

// GitFetcher shallow-clones a repository and drops its history.
type GitFetcher struct {
	URL    string
	Branch string
	Runner shell.Runner
}

// Args returns the git arguments used to clone into dest.
func (g *GitFetcher) Args(dest string) []string {
	args := []string{"clone", "--depth=1"}
	if g.Branch != "" {
		args = append(args, "--branch", g.Branch)
	}
	return append(args, g.URL, dest)
}

// Fetch implements Fetcher.
func (g *GitFetcher) Fetch(ctx context.Context, dest string) error {
	if err := g.Runner.Run(ctx, "", "git", g.Args(dest)...); err != nil {
		return fmt.Errorf("failed to clone %s: %w", g.URL, err)
	}

	if err := os.RemoveAll(filepath.Join(dest, ".git")); err != nil {
		return fmt.Errorf("failed to remove git history: %w", err)
	}
	return nil
}

// String is the repository URL, shown in error messages.
func (g *GitFetcher) String() string {
	return strings.TrimSpace(g.URL)
}
