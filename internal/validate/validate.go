package validate

import (
	"fmt"
	"strings"
)

// AppName checks the name given to "new". It becomes a directory name, so
// path separators are rejected.
func AppName(name string) error {
	if err := common(name); err != nil {
		return err
	}
	if strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("name %q cannot contain path separators", name)
	}
	return nil
}

// ArtifactName checks the name given to the make commands. Forward slashes
// select a sub-directory, e.g. "admin/user".
func ArtifactName(name string) error {
	if err := common(name); err != nil {
		return err
	}
	if strings.HasPrefix(name, "/") || strings.HasSuffix(name, "/") {
		return fmt.Errorf("name %q cannot start or end with a slash", name)
	}
	for _, part := range strings.Split(name, "/") {
		if part == "" || part == "." || part == ".." {
			return fmt.Errorf("name %q contains an invalid path segment %q", name, part)
		}
		if strings.HasPrefix(part, "-") {
			return fmt.Errorf("name %q: segment %q cannot start with a hyphen", name, part)
		}
	}
	return nil
}

// common ensures the name is non-empty and only uses letters, digits,
// hyphens, underscores, dots and slashes.
func common(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if strings.HasPrefix(name, "-") {
		return fmt.Errorf("name %q cannot start with a hyphen", name)
	}

	for _, char := range name {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
		case char == '-', char == '_', char == '.', char == '/':
		default:
			return fmt.Errorf("name %q can only contain letters, numbers, hyphens, underscores, dots and slashes", name)
		}
	}
	return nil
}
