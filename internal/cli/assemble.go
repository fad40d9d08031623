package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layerstack/internal/app"
	"layerstack/internal/core"
	"layerstack/internal/types"
)

type orderOptions struct {
	Direction string
	Prefix    string
	Pattern   string
	Extension string
}

type assembleOptions struct {
	Source      string
	Output      string
	CRS         string
	Title       string
	Destination string
	Existing    string
	InsertAt    string
	Report      string
	DryRun      bool
	Strict      bool
	Order       orderOptions
}

func newAssembleCommand() *cobra.Command {
	opts := assembleOptions{}
	cmd := &cobra.Command{
		Use:   "assemble",
		Short: "Load layer definitions in index order and write the project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAssemble(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Source, "source", "", "Directory containing layer definition files")
	cmd.Flags().StringVar(&opts.Output, "output", "", "Project file to write (.qgs)")
	cmd.Flags().StringVar(&opts.CRS, "crs", core.DefaultCRS, "Project coordinate reference system (AUTHORITY:CODE)")
	cmd.Flags().StringVar(&opts.Title, "title", "", "Project title")
	cmd.Flags().StringVar(&opts.Destination, "destination", string(types.DestinationNew), "Start from a new project or an existing one (new|existing)")
	cmd.Flags().StringVar(&opts.Existing, "existing", "", "Existing project to load into (defaults to --output)")
	cmd.Flags().StringVar(&opts.InsertAt, "insert-at", string(types.InsertTop), "Where each definition is inserted in the tree (top|bottom)")
	cmd.Flags().StringVar(&opts.Report, "report", "", "Write a YAML run report to this path")
	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "Print the load order without touching any project")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Fail when any definition file could not be inserted")
	addOrderFlags(cmd, &opts.Order)

	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("crs", cmd.Flags().Lookup("crs"))
	_ = viper.BindPFlag("title", cmd.Flags().Lookup("title"))
	_ = viper.BindPFlag("destination", cmd.Flags().Lookup("destination"))
	_ = viper.BindPFlag("existing", cmd.Flags().Lookup("existing"))
	_ = viper.BindPFlag("insert_at", cmd.Flags().Lookup("insert-at"))
	_ = viper.BindPFlag("report", cmd.Flags().Lookup("report"))
	_ = viper.BindPFlag("dry_run", cmd.Flags().Lookup("dry-run"))
	_ = viper.BindPFlag("strict", cmd.Flags().Lookup("strict"))

	return cmd
}

func addOrderFlags(cmd *cobra.Command, opts *orderOptions) {
	cmd.Flags().StringVar(&opts.Direction, "direction", string(types.SortDescending), "Load order by index (descending|ascending)")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", core.DefaultPrefix, "File name prefix before the index digits")
	cmd.Flags().StringVar(&opts.Pattern, "pattern", "", "Regular expression whose first group is the index (overrides --prefix)")
	cmd.Flags().StringVar(&opts.Extension, "extension", core.DefaultExtension, "Definition file extension")

	_ = viper.BindPFlag("direction", cmd.Flags().Lookup("direction"))
	_ = viper.BindPFlag("prefix", cmd.Flags().Lookup("prefix"))
	_ = viper.BindPFlag("pattern", cmd.Flags().Lookup("pattern"))
	_ = viper.BindPFlag("extension", cmd.Flags().Lookup("extension"))
}

func resolveOrder(cmd *cobra.Command, opts orderOptions) app.OrderOptions {
	return app.OrderOptions{
		Direction: types.SortDirection(resolveString(cmd, opts.Direction, "direction", "direction")),
		Prefix:    resolveString(cmd, opts.Prefix, "prefix", "prefix"),
		Pattern:   resolveString(cmd, opts.Pattern, "pattern", "pattern"),
		Extension: resolveString(cmd, opts.Extension, "extension", "extension"),
	}
}

func runAssemble(ctx context.Context, cmd *cobra.Command, opts assembleOptions) error {
	service := newAppService()
	report, err := service.Assemble(ctx, app.AssembleRequest{
		SourceDir: resolveString(cmd, opts.Source, "source", "source"),
		Settings: types.ProjectSettings{
			CRS:        resolveString(cmd, opts.CRS, "crs", "crs"),
			OutputPath: resolveString(cmd, opts.Output, "output", "output"),
			Title:      resolveString(cmd, opts.Title, "title", "title"),
		},
		Order:        resolveOrder(cmd, opts.Order),
		Destination:  types.Destination(resolveString(cmd, opts.Destination, "destination", "destination")),
		ExistingPath: resolveString(cmd, opts.Existing, "existing", "existing"),
		InsertAt:     types.InsertPosition(resolveString(cmd, opts.InsertAt, "insert_at", "insert-at")),
		DryRun:       resolveBool(cmd, opts.DryRun, "dry_run", "dry-run"),
		ReportPath:   resolveString(cmd, opts.Report, "report", "report"),
	})

	out := cmd.OutOrStdout()
	if report.DryRun {
		renderPlan(out, report.Planned)
	} else if len(report.Outcomes) > 0 {
		renderOutcomes(out, report)
	}
	renderSummary(out, report)
	if err != nil {
		return err
	}

	if resolveBool(cmd, opts.Strict, "strict", "strict") && report.Failed() > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("%d of %d definition files failed", report.Failed(), len(report.Outcomes)))
	}
	return nil
}
