package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"layerstack/internal/types"
)

// Preview lists the definition files of a source directory in load order
// without touching any project. Files are also grouped into the configured
// index bands; a file lands in the first band containing its index.
func (s Service) Preview(ctx context.Context, req PreviewRequest) (PreviewResult, error) {
	sourceDir := strings.TrimSpace(req.SourceDir)
	if sourceDir == "" {
		return PreviewResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is required")
	}
	sorter, err := newSorter(req.Order)
	if err != nil {
		return PreviewResult{}, err
	}
	files, err := s.discover(ctx, sorter, sourceDir)
	if err != nil {
		return PreviewResult{}, err
	}

	result := PreviewResult{SourceDir: sourceDir, Files: files}
	bands := make([]PreviewBand, len(req.Bands))
	for i, band := range req.Bands {
		bands[i].Name = band.Name
	}
	for _, file := range files {
		slot := bandFor(req.Bands, file)
		if slot < 0 {
			result.Unbanded = append(result.Unbanded, file)
			continue
		}
		bands[slot].Files = append(bands[slot].Files, file)
	}
	result.Bands = bands
	return result, nil
}

func bandFor(bands []types.IndexBand, file types.LayerDefinitionFile) int {
	if !file.HasIndex() {
		return -1
	}
	for i, band := range bands {
		if band.Contains(*file.Index) {
			return i
		}
	}
	return -1
}
