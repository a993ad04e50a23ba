package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aipalm/aipalm/internal/store"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the chosen language, onboarding and saved readings",
	RunE: func(cmd *cobra.Command, args []string) error {
		keepHistory, _ := cmd.Flags().GetBool("keep-history")

		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := context.Background()
		settings := e.store.SettingsRepo()
		for _, key := range []string{store.KeyAppLanguage, store.KeyHasCompletedOnboarding} {
			if err := settings.Delete(ctx, key); err != nil {
				return fmt.Errorf("reset %s: %w", key, err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Language and onboarding reset.")

		if keepHistory {
			return nil
		}
		n, err := e.store.ReadingRepo().DeleteAll(ctx)
		if err != nil {
			return fmt.Errorf("clear history: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d saved readings.\n", n)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("keep-history", false, "Keep saved readings")
}
