package main

import (
	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Poll the feed continuously and report deals",
		Long: `Runs the poll loop until interrupted: refresh the spot price, fetch the
newest listings, extract and evaluate each unseen one, and report every item
priced below its category threshold. The interval between cycles is
randomized within the configured range.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			watcher, err := buildWatcher()
			if err != nil {
				return err
			}
			return watcher.Run(cmd.Context())
		},
	}
}
