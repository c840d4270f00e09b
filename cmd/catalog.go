package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arden-renewables/sitescope/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the active constraint catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog()
		if err != nil {
			return err
		}

		for _, c := range catalog.Categories {
			entries := cat.ByCategory(c)
			if len(entries) == 0 {
				continue
			}
			fmt.Printf("%s\n", c)
			for _, e := range entries {
				fmt.Printf("  %-28s %-36s buffer %.0fm  weight %.1f\n",
					e.ID, e.Name, e.BufferDistanceMeters, e.Weight)
			}
		}
		fmt.Printf("\n%d constraints\n", cat.Len())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
