package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func scanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Run a single poll cycle and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			watcher, err := buildWatcher()
			if err != nil {
				return err
			}

			found := watcher.RunOnce(cmd.Context())
			fmt.Printf("Scan complete: %d deal(s) found.\n", found)
			return nil
		},
	}
}
