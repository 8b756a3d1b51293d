package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/larder/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Clean the download caches and the content store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _ := cmd.Flags().GetBool("store")
			cache, _ := cmd.Flags().GetBool("cache")
			all, _ := cmd.Flags().GetBool("all")

			opts := app.CleanOptions{
				Store: store,
				Cache: cache,
			}

			switch {
			case all:
				opts.Store = true
				opts.Cache = true
			case !store && !cache:
				// Default behavior: clean caches, keep installed content
				opts.Cache = true
			}

			return c.app.Clean(cmd.Context(), opts)
		},
	}

	cmd.Flags().BoolP("store", "s", false, "Clean the content store of unpacked packages")
	cmd.Flags().Bool("cache", false, "Clean the catalog, repository, and download caches")
	cmd.Flags().BoolP("all", "a", false, "Clean everything (caches and content store)")

	return cmd
}
