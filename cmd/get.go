/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/zettelwing/store"
	"github.com/spf13/cobra"
)

var getRaw bool

// getCmd represents the get command
var getCmd = &cobra.Command{
	Use:   "get <zettel-id>",
	Short: "Show a knowledge entry, resolving project tier before user tier",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		zettelID := args[0]

		localStore := GetLocalStore()
		doc, loc, err := localStore.Read(zettelID, "")
		if err == nil {
			if getRaw {
				fmt.Println(doc.Entry.Content)
				return nil
			}
			return printEntryJSON(map[string]interface{}{
				"entry":  doc.Entry,
				"tier":   string(loc.Tier),
				"path":   loc.Path,
				"source": "local",
			})
		}
		if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("failed to read entry: %w", err)
		}

		// Not local, try the registry.
		client, cerr := GetRegistryClient()
		if cerr != nil {
			return cerr
		}
		defer func() { _ = client.Close() }()

		entry, rerr := client.Get(cmd.Context(), zettelID)
		if rerr != nil {
			return fmt.Errorf("registry lookup failed: %w", rerr)
		}
		if entry == nil {
			return fmt.Errorf("entry %q not found in any tier", zettelID)
		}
		if getRaw {
			fmt.Println(entry.Content)
			return nil
		}
		return printEntryJSON(map[string]interface{}{
			"entry":  entry,
			"source": "registry",
		})
	},
}

func printEntryJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().BoolVar(&getRaw, "raw", false, "print only the markdown body")
}
