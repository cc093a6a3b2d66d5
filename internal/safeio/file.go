// Package safeio reads and writes files through an os.Root scoped to
// the file's parent directory, so a path component swapped for a
// symlink cannot redirect the operation elsewhere.
package safeio

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// ReadFile reads the exact targetPath by opening its parent directory as a root.
func ReadFile(targetPath string) ([]byte, error) {
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}

	root, err := os.OpenRoot(filepath.Dir(targetAbs))
	if err != nil {
		return nil, fmt.Errorf("open parent root: %w", err)
	}
	defer root.Close()

	file, err := root.Open(filepath.Base(targetAbs))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return io.ReadAll(file)
}

// WriteFile replaces targetPath's content through its parent-directory
// root, keeping the existing file mode. The file must already exist;
// the formatter never creates source files.
func WriteFile(targetPath string, data []byte) error {
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return fmt.Errorf("resolve target path: %w", err)
	}

	root, err := os.OpenRoot(filepath.Dir(targetAbs))
	if err != nil {
		return fmt.Errorf("open parent root: %w", err)
	}
	defer root.Close()

	// O_TRUNC on the existing file keeps its inode and mode.
	file, err := root.OpenFile(filepath.Base(targetAbs), os.O_WRONLY|os.O_TRUNC, fs.FileMode(0o600))
	if err != nil {
		return err
	}
	if _, err := file.Write(data); err != nil {
		file.Close()
		return fmt.Errorf("write %s: %w", targetPath, err)
	}
	return file.Close()
}
