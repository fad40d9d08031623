package cli

import (
	"context"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layerstack/internal/app"
	"layerstack/internal/types"
)

type previewOptions struct {
	Source string
	Order  orderOptions
}

func newPreviewCommand() *cobra.Command {
	opts := previewOptions{}
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Show the load order, grouped into the configured index bands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Source, "source", "", "Directory containing layer definition files")
	addOrderFlags(cmd, &opts.Order)
	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	return cmd
}

func runPreview(ctx context.Context, cmd *cobra.Command, opts previewOptions) error {
	bands, err := configuredBands()
	if err != nil {
		return err
	}
	service := newAppService()
	result, err := service.Preview(ctx, app.PreviewRequest{
		SourceDir: resolveString(cmd, opts.Source, "source", "source"),
		Order:     resolveOrder(cmd, opts.Order),
		Bands:     bands,
	})
	if err != nil {
		return err
	}
	renderPreview(cmd.OutOrStdout(), result)
	return nil
}

// configuredBands reads the optional "bands" list from the config file.
func configuredBands() ([]types.IndexBand, error) {
	var bands []types.IndexBand
	if !viper.IsSet("bands") {
		return nil, nil
	}
	if err := viper.UnmarshalKey("bands", &bands); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid bands configuration").
			WithCause(err)
	}
	for _, band := range bands {
		if band.Name == "" || band.Min > band.Max {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("each band needs a name and min <= max")
		}
	}
	return bands, nil
}
