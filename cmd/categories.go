/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/zettelwing/store"
	"github.com/spf13/cobra"
)

var categoriesTier string

// categoriesCmd represents the categories command
var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List category directories in a local tier",
	RunE: func(cmd *cobra.Command, args []string) error {
		tier := store.Tier(categoriesTier)
		if tier != store.TierProject && tier != store.TierUser {
			return fmt.Errorf("invalid tier %q: must be project or user", categoriesTier)
		}

		cats, err := GetLocalStore().DiscoverCategories(tier)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		for _, c := range cats {
			fmt.Println(c)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)

	categoriesCmd.Flags().StringVar(&categoriesTier, "tier", "project", "tier to inspect: project or user")
}
