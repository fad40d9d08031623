package cli

import (
	"github.com/spf13/cobra"

	"layerstack/internal/app"
)

func newInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <project.qgs>",
		Short: "Print a project's settings and layer tree with credentials redacted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args[0])
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, path string) error {
	service := newAppService()
	result, err := service.Inspect(app.InspectRequest{ProjectPath: path})
	if err != nil {
		return err
	}
	renderInspect(cmd.OutOrStdout(), result)
	return nil
}
