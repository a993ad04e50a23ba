package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aipalm/aipalm/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List saved palm readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		full, _ := cmd.Flags().GetBool("full")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		readings, err := e.store.ReadingRepo().List(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("list readings: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(readings) == 0 {
			fmt.Fprintln(out, "No readings saved yet.")
			return nil
		}

		fmt.Fprintf(out, "%-36s  %-16s  %-5s  %-4s  %s\n", "ID", "Date", "Hand", "Lang", "Summary")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, r := range readings {
			summary := r.Summary
			if !full {
				summary = truncate(summary, 30)
			}
			fmt.Fprintf(out, "%-36s  %-16s  %-5s  %-4s  %s\n",
				r.ID,
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				r.Hand,
				r.Language,
				summary,
			)
			if full {
				fmt.Fprintf(out, "    heart: %s\n    head:  %s\n    life:  %s\n    fate:  %s\n\n",
					r.HeartLine, r.HeadLine, r.LifeLine, r.FateLine)
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of readings to show")
	historyCmd.Flags().Bool("full", false, "Show every line of each reading")
}
