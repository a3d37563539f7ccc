package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shyamganesh19k-droid/FileExtractor/internal/importer"
)

var infoCmd = &cobra.Command{
	Use:   "info <file.xlsx>",
	Short: "Show the project id and description found in the Pricing Summary",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readWorkbookArg(args[0])
		if err != nil {
			return err
		}

		coordinator := importer.NewCoordinator(logger,
			importer.WithSearchRows(cfg.Extract.MetadataSearchRows, cfg.Extract.SheetSearchRows),
		)
		info, err := coordinator.ExtractInfo(data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, field("Project ID", info.ProjectID))
		fmt.Fprintln(out, field("Description", info.Description))
		return nil
	},
}
