package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

type ProjectFinalizer struct {
	store ports.ProjectStorePort
}

func NewProjectFinalizer(store ports.ProjectStorePort) ProjectFinalizer {
	return ProjectFinalizer{store: store}
}

// Finalize applies project-level settings and persists the project. It is
// called once per run whatever the insertion outcomes were.
func (f ProjectFinalizer) Finalize(ctx context.Context, settings types.ProjectSettings) error {
	assert.NotEmpty(ctx, settings.OutputPath, "output path must be set")
	crs, err := ParseCRS(settings.CRS)
	if err != nil {
		return err
	}
	if err := f.store.SetCRS(crs.String()); err != nil {
		return err
	}
	if settings.Title != "" {
		f.store.SetTitle(settings.Title)
	}
	if err := f.store.Save(settings.OutputPath); err != nil {
		return err
	}
	log.Ctx(ctx).Info().Str("crs", crs.String()).Str("output", settings.OutputPath).Msg("project saved")
	return nil
}
