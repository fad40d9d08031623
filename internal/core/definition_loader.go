package core

import (
	"context"
	"errors"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

type DefinitionLoader struct {
	reader ports.DefinitionReaderPort
}

func NewDefinitionLoader(reader ports.DefinitionReaderPort) DefinitionLoader {
	return DefinitionLoader{reader: reader}
}

// Load turns one file into an insertion request. Read and parse failures are
// carried on the request instead of being returned.
func (l DefinitionLoader) Load(ctx context.Context, sequence int, file types.LayerDefinitionFile) types.InsertionRequest {
	request := types.InsertionRequest{Sequence: sequence, File: file}
	def, err := l.reader.Read(file.Path)
	if err != nil {
		request.LoadError = failureMessage(err)
		log.Ctx(ctx).Warn().Str("file", file.Name).Str("error", request.LoadError).Msg("definition unreadable")
		return request
	}
	if len(def.Nodes) == 0 {
		request.LoadError = "definition contains no layer tree nodes"
		log.Ctx(ctx).Warn().Str("file", file.Name).Msg("definition has an empty layer tree")
		return request
	}
	def.File = file
	request.Definition = &def
	log.Ctx(ctx).Debug().
		Str("file", file.Name).
		Int("nodes", len(def.Nodes)).
		Int("layers", len(def.Layers)).
		Msg("definition loaded")
	return request
}

// LoadAll loads every file in order; sequences start at 1.
func (l DefinitionLoader) LoadAll(ctx context.Context, files []types.LayerDefinitionFile) []types.InsertionRequest {
	requests := make([]types.InsertionRequest, 0, len(files))
	for i, file := range files {
		requests = append(requests, l.Load(ctx, i+1, file))
	}
	return requests
}

func failureMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
