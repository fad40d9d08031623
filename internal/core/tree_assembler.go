package core

import (
	"context"

	"github.com/rs/zerolog/log"

	"layerstack/internal/ports"
	"layerstack/internal/types"
)

// TreeAssembler is the only component that mutates the destination tree
// during a run.
type TreeAssembler struct {
	store    ports.ProjectStorePort
	position types.InsertPosition
}

func NewTreeAssembler(store ports.ProjectStorePort, position types.InsertPosition) TreeAssembler {
	if position == "" {
		position = types.InsertTop
	}
	return TreeAssembler{store: store, position: position}
}

// Assemble applies requests in the given order, one attempt each. A failed
// request never stops the remaining ones.
func (a TreeAssembler) Assemble(ctx context.Context, requests []types.InsertionRequest) []types.InsertionOutcome {
	outcomes := make([]types.InsertionOutcome, 0, len(requests))
	for _, request := range requests {
		outcomes = append(outcomes, a.apply(ctx, request))
	}
	log.Ctx(ctx).Debug().Int("requests", len(requests)).Msg("tree assembled")
	return outcomes
}

func (a TreeAssembler) apply(ctx context.Context, request types.InsertionRequest) types.InsertionOutcome {
	outcome := types.InsertionOutcome{Sequence: request.Sequence, File: request.File}
	if request.Definition == nil {
		outcome.Status = types.OutcomeFailure
		outcome.Kind = types.FailureDefinitionUnreadable
		outcome.Error = request.LoadError
		return outcome
	}
	ids, err := a.store.Insert(*request.Definition, a.position)
	if err != nil {
		outcome.Status = types.OutcomeFailure
		outcome.Kind = types.FailureInsertionRejected
		outcome.Error = failureMessage(err)
		log.Ctx(ctx).Warn().Str("file", request.File.Name).Str("error", outcome.Error).Msg("insertion rejected")
		return outcome
	}
	outcome.Status = types.OutcomeSuccess
	outcome.LayerIDs = ids
	log.Ctx(ctx).Info().Str("file", request.File.Name).Int("layers", len(ids)).Msg("definition inserted")
	return outcome
}
