package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"layerstack/internal/app"
)

func newCleanCommand() *cobra.Command {
	var workers int
	var directories []string
	cmd := &cobra.Command{
		Use:   "clean [project.qgs]...",
		Short: "Remove datasource passwords from projects so they can be committed",
		Long: "Remove datasource passwords from the named projects and from every .qgs\n" +
			"project found below each --directory.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, app.CleanRequest{
				ProjectPaths: args,
				Directories:  resolveStrings(cmd, directories, "clean.directories", "directory"),
				Workers:      resolveInt(cmd, workers, "clean.workers", "workers"),
			})
		},
	}
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of projects cleaned concurrently")
	cmd.Flags().StringSliceVar(&directories, "directory", nil, "Directory searched recursively for .qgs projects (repeatable)")
	_ = viper.BindPFlag("clean.workers", cmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("clean.directories", cmd.Flags().Lookup("directory"))
	return cmd
}

func runClean(cmd *cobra.Command, req app.CleanRequest) error {
	service := newAppService()
	result, err := service.Clean(req)
	for _, path := range result.Cleaned {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cleaned: %s\n", path)
	}
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d datasources cleaned in %d of %d projects\n", result.Datasources, len(result.Cleaned), result.Scanned)
	return nil
}
