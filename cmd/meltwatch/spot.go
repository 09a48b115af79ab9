package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func spotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spot",
		Short: "Print the current silver spot price",
		RunE: func(cmd *cobra.Command, _ []string) error {
			provider := buildSpotProvider()
			price := provider.Current(cmd.Context())
			fmt.Printf("%s: $%.2f/oz\n", viper.GetString("spot.ticker"), price)
			return nil
		},
	}
}
