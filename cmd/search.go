/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/josephgoksu/zettelwing/models"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/store"
	"github.com/spf13/cobra"
)

var (
	searchSource   string
	searchCategory string
	searchType     string
	searchTags     []string
	searchLimit    int
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search knowledge entries across storage tiers",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		if searchSource != "local" && searchSource != "registry" && searchSource != "all" {
			return fmt.Errorf("invalid source %q: must be local, registry, or all", searchSource)
		}

		var results []models.SearchResult

		if searchSource == "local" || searchSource == "all" {
			localStore := GetLocalStore()
			local, err := localStore.Search(store.SearchQuery{
				Query:     query,
				Category:  searchCategory,
				EntryType: searchType,
				Tags:      searchTags,
				Limit:     searchLimit,
			})
			if err != nil {
				return fmt.Errorf("local search failed: %w", err)
			}
			results = append(results, local...)
		}

		if searchSource == "registry" || searchSource == "all" {
			client, err := GetRegistryClient()
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			remote, err := client.Search(cmd.Context(), query, registry.SearchFilter{
				Category:  searchCategory,
				EntryType: searchType,
				Tags:      searchTags,
				Limit:     searchLimit,
			})
			if err != nil {
				return fmt.Errorf("registry search failed: %w", err)
			}
			results = append(results, remote...)
		}

		sort.SliceStable(results, func(i, j int) bool {
			return results[i].RelevanceScore > results[j].RelevanceScore
		})
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchSource, "source", "local", "tiers to search: local, registry, or all")
	searchCmd.Flags().StringVar(&searchCategory, "category", "", "filter by category path")
	searchCmd.Flags().StringVar(&searchType, "type", "", "filter by entry type")
	searchCmd.Flags().StringSliceVar(&searchTags, "tags", nil, "filter by tags (any match)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
}
