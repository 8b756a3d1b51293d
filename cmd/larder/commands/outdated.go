package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/larder/internal/app"
)

func (c *CLI) newOutdatedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outdated",
		Short: "List locked packages with newer satisfying versions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("chdir")

			outdated, err := c.app.Outdated(cmd.Context(), app.OutdatedOptions{
				Dir: dir,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(outdated) == 0 {
				_, _ = fmt.Fprintln(out, "all packages are up to date")
				return nil
			}
			for _, pkg := range outdated {
				_, _ = fmt.Fprintf(out, "%s %s -> %s (%s)\n", pkg.Name, pkg.Locked, pkg.Candidate, pkg.SourceID)
			}
			return nil
		},
	}
}
