package organize

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrOutputExists is returned when the output directory is already
	// present and overwriting was not requested.
	ErrOutputExists = errors.New("organize: output directory exists (use --force to overwrite)")

	// ErrOutputInsideSource is returned when the output directory would be
	// the source root or lie beneath it.
	ErrOutputInsideSource = errors.New("organize: output directory is inside the source tree")

	// ErrSourceInsideOutput is returned when the source root lies beneath
	// the output directory, which PrepareOutput would remove.
	ErrSourceInsideOutput = errors.New("organize: source tree is inside the output directory")
)

// PrepareOutput makes dir an empty directory. An existing dir is an error
// unless force is set, in which case it is removed first.
func PrepareOutput(dir string, force bool) error {
	if _, err := os.Lstat(dir); err == nil {
		if !force {
			return fmt.Errorf("%w: %s", ErrOutputExists, dir)
		}
		if err := os.RemoveAll(dir); err != nil {
			return fmt.Errorf("organize: remove %s: %w", dir, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("organize: stat %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("organize: create %s: %w", dir, err)
	}
	return nil
}

// within reports whether path is root or a descendant of it. Both must be absolute.
func within(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
