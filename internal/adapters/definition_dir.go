package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerstack/internal/ports"
)

type DefinitionDirAdapter struct{}

func NewDefinitionDirAdapter() DefinitionDirAdapter {
	return DefinitionDirAdapter{}
}

// List returns the regular files directly inside dir, sorted by name.
// Subdirectories are not searched.
func (a DefinitionDirAdapter) List(dir string) ([]string, error) {
	if dir == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("source directory not found: %s", dir)).
				WithCause(err)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("source directory not accessible: %s", dir)).
			WithCause(err)
	}
	if !info.IsDir() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("source path is not a directory: %s", dir))
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("source directory not enumerable: %s", dir)).
			WithCause(err)
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	return paths, nil
}

var _ ports.DefinitionSourcePort = DefinitionDirAdapter{}
