package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideDirectory is returned for paths that escape the configured
// directory.
var ErrOutsideDirectory = errors.New("path is outside configured directory")

// PathValidator confines file access to one directory tree. Symlinks are
// resolved before the containment check.
type PathValidator struct {
	configuredDirectory string
}

// NewPathValidator creates a new path validator for the given directory
func NewPathValidator(configuredDirectory string) (*PathValidator, error) {
	if configuredDirectory == "" {
		return nil, fmt.Errorf("configured directory cannot be empty")
	}

	abs, err := filepath.Abs(configuredDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve configured directory: %w", err)
	}

	return &PathValidator{configuredDirectory: abs}, nil
}

// GetConfiguredDirectory returns the configured directory path
func (v *PathValidator) GetConfiguredDirectory() string {
	return v.configuredDirectory
}

// ResolvePath turns path into a cleaned absolute path inside the configured
// directory. Relative paths are taken relative to that directory.
func (v *PathValidator) ResolvePath(path string) (string, error) {
	path = strings.ReplaceAll(path, "\x00", "")
	if strings.TrimSpace(path) == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(v.configuredDirectory, path)
	}
	path = filepath.Clean(path)

	within, err := v.IsPathWithinDirectory(path)
	if err != nil {
		return "", fmt.Errorf("path validation failed: %w", err)
	}
	if !within {
		return "", fmt.Errorf("%w: %s", ErrOutsideDirectory, path)
	}

	return path, nil
}

// ValidatePath checks if a path is within the configured directory
func (v *PathValidator) ValidatePath(path string) error {
	_, err := v.ResolvePath(path)
	return err
}

// IsPathWithinDirectory reports whether path, after symlink resolution,
// lies in the configured directory or is the directory itself.
func (v *PathValidator) IsPathWithinDirectory(path string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	realDir, err := realPath(v.configuredDirectory)
	if err != nil {
		return false, fmt.Errorf("failed to resolve configured directory: %w", err)
	}
	resolved, err := realPath(absPath)
	if err != nil {
		return false, fmt.Errorf("failed to resolve path: %w", err)
	}

	return contains(realDir, resolved), nil
}

// ValidateDirectory checks that dirPath is an existing directory inside the
// configured directory.
func (v *PathValidator) ValidateDirectory(dirPath string) (string, error) {
	resolved, err := v.ResolvePath(dirPath)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", fmt.Errorf("cannot access directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path is not a directory: %s", dirPath)
	}
	return resolved, nil
}

// realPath resolves symlinks in the longest existing prefix of path and
// appends the remaining, not yet existing, elements.
func realPath(path string) (string, error) {
	path = filepath.Clean(path)
	var rest []string
	for {
		resolved, err := filepath.EvalSymlinks(path)
		if err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved, nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(path)
		if parent == path {
			return "", err
		}
		rest = append(rest, filepath.Base(path))
		path = parent
	}
}

func contains(dir, path string) bool {
	if path == dir {
		return true
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
