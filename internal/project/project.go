// Package project locates the MSBuild project enclosing a source file
// and reports whether its packages have been restored. The built-in
// unused-using analyzer only trusts its findings once a restore has
// produced the project's assets file.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	projectFileExt   = ".csproj"
	solutionFileExt  = ".sln"
	objDirectoryName = "obj"
	assetsFileName   = "project.assets.json"
)

var (
	ErrNoProject   = errors.New("could not locate an enclosing project")
	ErrNotRestored = errors.New("project not yet restored")
)

// Info describes the project enclosing one source file.
type Info struct {
	// ProjectPath is the .csproj file, RootDir its directory.
	ProjectPath string
	RootDir     string
	Restored    bool
}

// Locate walks from the source file's directory upward until it finds a
// .csproj. A directory containing a .sln without any .csproj marks the
// repository root and stops the walk.
func Locate(sourcePath string) (Info, error) {
	dir, err := filepath.Abs(filepath.Dir(sourcePath))
	if err != nil {
		return Info{}, fmt.Errorf("resolve source dir: %w", err)
	}

	for {
		projectPath, solutionSeen, err := scanDir(dir)
		if err != nil {
			return Info{}, err
		}
		if projectPath != "" {
			return Info{
				ProjectPath: projectPath,
				RootDir:     dir,
				Restored:    isRestored(dir),
			}, nil
		}
		if solutionSeen {
			return Info{}, fmt.Errorf("%w: %s", ErrNoProject, sourcePath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return Info{}, fmt.Errorf("%w: %s", ErrNoProject, sourcePath)
		}
		dir = parent
	}
}

// Ready wraps Locate with the restore gate: it errors unless the
// enclosing project exists and has an assets file.
func Ready(sourcePath string) (Info, error) {
	info, err := Locate(sourcePath)
	if err != nil {
		return Info{}, err
	}
	if !info.Restored {
		return info, fmt.Errorf("%w: %s", ErrNotRestored, info.ProjectPath)
	}
	return info, nil
}

func scanDir(dir string) (projectPath string, solutionSeen bool, err error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false, fmt.Errorf("scan %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(filepath.Ext(name)) {
		case projectFileExt:
			if projectPath == "" {
				projectPath = filepath.Join(dir, name)
			}
		case solutionFileExt:
			solutionSeen = true
		}
	}
	return projectPath, solutionSeen, nil
}

func isRestored(rootDir string) bool {
	info, err := os.Stat(filepath.Join(rootDir, objDirectoryName, assetsFileName))
	return err == nil && !info.IsDir()
}
