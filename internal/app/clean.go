package app

import (
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"layerstack/internal/shared"
)

const defaultCleanWorkers = 4

// Clean strips datasource passwords from saved projects so they can be
// committed. Projects are independent files and are cleaned concurrently;
// projects without credentials are left untouched on disk.
func (s Service) Clean(req CleanRequest) (CleanResult, error) {
	paths, err := s.cleanTargets(req)
	if err != nil {
		return CleanResult{}, err
	}
	if len(paths) == 0 {
		return CleanResult{Cleaned: []string{}}, nil
	}
	workers := req.Workers
	if workers <= 0 {
		workers = defaultCleanWorkers
	}

	changed := make([]int, len(paths))
	var group errgroup.Group
	group.SetLimit(workers)
	for i, path := range paths {
		group.Go(func() error {
			count, err := s.cleanProject(path)
			changed[i] = count
			return err
		})
	}
	err = group.Wait()

	result := CleanResult{Scanned: len(paths), Cleaned: []string{}}
	for i, path := range paths {
		if changed[i] == 0 {
			continue
		}
		result.Cleaned = append(result.Cleaned, path)
		result.Datasources += changed[i]
	}
	return result, err
}

// cleanTargets lists explicit paths first, then projects found below each
// directory; a path reached twice is cleaned once.
func (s Service) cleanTargets(req CleanRequest) ([]string, error) {
	var explicit, dirs []string
	for _, raw := range req.ProjectPaths {
		if path := strings.TrimSpace(raw); path != "" {
			explicit = append(explicit, path)
		}
	}
	for _, raw := range req.Directories {
		if dir := strings.TrimSpace(raw); dir != "" {
			dirs = append(dirs, dir)
		}
	}
	if len(explicit) == 0 && len(dirs) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("at least one project path or directory is required")
	}

	seen := map[string]struct{}{}
	var paths []string
	add := func(path string) {
		key := filepath.Clean(path)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		paths = append(paths, path)
	}
	for _, path := range explicit {
		add(path)
	}
	for _, dir := range dirs {
		found, err := s.Finder.FindProjects(dir)
		if err != nil {
			return nil, err
		}
		if len(found) == 0 {
			log.Info().Str("directory", dir).Msg("no project files found")
		}
		for _, path := range found {
			add(path)
		}
	}
	return paths, nil
}

func (s Service) cleanProject(path string) (int, error) {
	store, err := s.Projects.Open(path)
	if err != nil {
		return 0, err
	}
	changed := store.RewriteDatasources(func(datasource string) string {
		return shared.RedactDatasource(datasource, "")
	})
	if changed == 0 {
		return 0, nil
	}
	if err := store.Save(path); err != nil {
		return 0, err
	}
	return changed, nil
}
