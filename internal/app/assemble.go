package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"layerstack/internal/core"
	"layerstack/internal/ports"
	"layerstack/internal/types"
)

// Assemble runs the pipeline: discover, sort, load, assemble, finalize. The
// returned report is always populated; the error is non-nil only for
// run-level failures, which are also recorded in report.Fatal.
func (s Service) Assemble(ctx context.Context, req AssembleRequest) (types.RunReport, error) {
	req, err := normalizeAssembleRequest(req)
	if err != nil {
		return types.RunReport{Source: req.SourceDir, DryRun: req.DryRun}, err
	}
	sorter, err := newSorter(req.Order)
	if err != nil {
		return types.RunReport{Source: req.SourceDir, DryRun: req.DryRun}, err
	}
	report := types.RunReport{
		Source:   req.SourceDir,
		DryRun:   req.DryRun,
		Settings: req.Settings,
		Outcomes: []types.InsertionOutcome{},
	}

	files, err := s.discover(ctx, sorter, req.SourceDir)
	if err != nil {
		return s.finish(ctx, req, report, fatal(&report, types.FailureSourceNotFound, errbuilder.CodeNotFound, err))
	}
	if len(files) == 0 {
		report.Notices = append(report.Notices, types.RunFailure{
			Kind:    types.FailureNoDefinitionFiles,
			Message: fmt.Sprintf("no definition files found in %s", req.SourceDir),
		})
		log.Ctx(ctx).Warn().Str("source", req.SourceDir).Msg("no definition files found")
	}
	if req.DryRun {
		report.Planned = files
		return s.finish(ctx, req, report, nil)
	}

	store, err := s.acquire(req)
	if err != nil {
		return s.finish(ctx, req, report, fatal(&report, types.FailureDestinationUnavailable, errbuilder.CodeOf(err), err))
	}

	requests := core.NewDefinitionLoader(s.Reader).LoadAll(ctx, files)
	report.Outcomes = core.NewTreeAssembler(store, req.InsertAt).Assemble(ctx, requests)

	if err := core.NewProjectFinalizer(store).Finalize(ctx, req.Settings); err != nil {
		return s.finish(ctx, req, report, fatal(&report, types.FailureFinalizationFailed, errbuilder.CodeInternal, err))
	}
	report.Persisted = true
	return s.finish(ctx, req, report, nil)
}

func (s Service) discover(ctx context.Context, sorter core.FilenameSorter, dir string) ([]types.LayerDefinitionFile, error) {
	paths, err := s.Definitions.List(dir)
	if err != nil {
		return nil, err
	}
	files := sorter.Sort(ctx, paths)
	log.Ctx(ctx).Debug().Int("candidates", len(paths)).Int("definitions", len(files)).Msg("definition files discovered")
	return files, nil
}

// acquire implements the tree-acquisition strategy of the request.
func (s Service) acquire(req AssembleRequest) (ports.ProjectStorePort, error) {
	if req.Destination == types.DestinationExisting {
		return s.Projects.Open(req.ExistingPath)
	}
	return s.Projects.Create(), nil
}

func (s Service) finish(ctx context.Context, req AssembleRequest, report types.RunReport, runErr error) (types.RunReport, error) {
	logger := log.Ctx(ctx)
	event := logger.Info()
	if !report.OK() {
		event = logger.Error().Str("fatal", string(report.Fatal.Kind))
	}
	event.
		Int("succeeded", report.Succeeded()).
		Int("failed", report.Failed()).
		Bool("persisted", report.Persisted).
		Bool("dry_run", report.DryRun).
		Msg("run finished")

	if req.ReportPath == "" {
		return report, runErr
	}
	if err := s.Reports.WriteReport(req.ReportPath, report); err != nil {
		if runErr != nil {
			return report, errors.Join(runErr, err)
		}
		return report, err
	}
	return report, runErr
}

// fatal records a run-level failure on the report and returns the error
// surfaced to the caller.
func fatal(report *types.RunReport, kind types.FailureKind, code errbuilder.ErrCode, err error) error {
	message := errorMessage(err)
	report.Fatal = &types.RunFailure{Kind: kind, Message: message}
	return errbuilder.New().
		WithCode(code).
		WithMsg(fmt.Sprintf("%s: %s", kind, message)).
		WithCause(err)
}

func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

func normalizeAssembleRequest(req AssembleRequest) (AssembleRequest, error) {
	req.SourceDir = strings.TrimSpace(req.SourceDir)
	req.Settings.OutputPath = strings.TrimSpace(req.Settings.OutputPath)
	req.Settings.CRS = strings.TrimSpace(req.Settings.CRS)
	req.ExistingPath = strings.TrimSpace(req.ExistingPath)
	if req.SourceDir == "" {
		return req, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is required")
	}
	if req.Settings.OutputPath == "" && !req.DryRun {
		return req, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output project path is required")
	}
	if req.Settings.CRS == "" {
		req.Settings.CRS = core.DefaultCRS
	}
	destination, ok := types.ParseDestination(string(req.Destination))
	if !ok {
		return req, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown destination %q, expected new or existing", req.Destination))
	}
	req.Destination = destination
	if req.ExistingPath == "" {
		req.ExistingPath = req.Settings.OutputPath
	}
	position, ok := types.ParseInsertPosition(string(req.InsertAt))
	if !ok {
		return req, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown insert position %q, expected top or bottom", req.InsertAt))
	}
	req.InsertAt = position
	return req, nil
}

func newSorter(opts OrderOptions) (core.FilenameSorter, error) {
	direction, ok := types.ParseSortDirection(strings.TrimSpace(string(opts.Direction)))
	if !ok {
		return core.FilenameSorter{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown sort direction %q, expected ascending or descending", opts.Direction))
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = core.DefaultPrefix
	}
	extension := opts.Extension
	if extension == "" {
		extension = core.DefaultExtension
	}
	scheme, err := core.NewNamingScheme(prefix, opts.Pattern, extension)
	if err != nil {
		return core.FilenameSorter{}, err
	}
	return core.NewFilenameSorter(scheme, direction), nil
}
