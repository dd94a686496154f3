package preflight

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MissingFilesError lists file patterns that matched nothing.
type MissingFilesError struct {
	Patterns []string
}

func (e *MissingFilesError) Error() string {
	return fmt.Sprintf("missing files: %s", strings.Join(e.Patterns, ", "))
}

// CheckFiles verifies that each pattern matches at least one regular file in fsys.
// Patterns use doublestar syntax, so "config/**/*.yml" is allowed.
func CheckFiles(fsys fs.FS, patterns []string) error {
	var missing []string
	for _, pattern := range patterns {
		ok, err := matchesFile(fsys, pattern)
		if err != nil {
			return fmt.Errorf("checking %q: %w", pattern, err)
		}
		if !ok {
			missing = append(missing, pattern)
		}
	}

	if len(missing) > 0 {
		return &MissingFilesError{Patterns: missing}
	}
	return nil
}

func matchesFile(fsys fs.FS, pattern string) (bool, error) {
	matches, err := doublestar.Glob(fsys, strings.TrimPrefix(pattern, "./"))
	if err != nil {
		return false, err
	}
	for _, m := range matches {
		info, err := fs.Stat(fsys, m)
		if err != nil {
			return false, err
		}
		if !info.IsDir() {
			return true, nil
		}
	}
	return false, nil
}
