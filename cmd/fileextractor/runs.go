package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var runsLimit int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recent transform runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		runs, err := st.ListRuns(cmd.Context(), runsLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(out, labelStyle.Render("no runs recorded"))
			return nil
		}
		for _, r := range runs {
			status := successStyle.Render(r.Status)
			if r.Status != "completed" {
				status = errorStyle.Render(r.Status)
			}
			fmt.Fprintf(out, "%s  %-10s %s (%s) lines=%d summary=%d skipped=%d by %s\n",
				humanize.Time(r.CreatedAt), status, r.Filename, humanize.Bytes(uint64(r.FileSize)),
				r.LineItems, r.SummaryRows, len(r.Skipped), r.Username)
			if r.Error != "" {
				fmt.Fprintln(out, "    "+errorStyle.Render(r.Error))
			}
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().IntVarP(&runsLimit, "limit", "n", 20, "number of runs to show")
}
