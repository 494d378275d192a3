/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/josephgoksu/zettelwing/internal/analytics"
	"github.com/josephgoksu/zettelwing/registry"
	"github.com/josephgoksu/zettelwing/store"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version.
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "zettelwing",
	Short: "Zettelwing resolves and searches tiered knowledge entries.",
	Long: `Zettelwing manages knowledge entries across three storage tiers: a
project-local directory, a user-global directory, and an optional shared
registry. It can run as an MCP server for AI assistants or be used directly
from the command line.`,
	Run: func(cmd *cobra.Command, args []string) {
		// return help if no args are provided
		if len(args) == 0 {
			_ = cmd.Help()
			os.Exit(0)
		}

		// otherwise, run the subcommand
	},
}

// Version returns the application version string.
func Version() string {
	return version
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(InitConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.zettelwing.yaml or ./.zettelwing.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// GetLocalStore builds the two-tier local store from the resolved configuration.
func GetLocalStore() *store.LocalStore {
	config := GetConfig()

	knowledgeDir := config.Project.KnowledgeDir
	if !filepath.IsAbs(knowledgeDir) {
		knowledgeDir = filepath.Join(config.Project.RootDir, knowledgeDir)
	}

	return store.NewLocalStore(afero.NewOsFs(), config.Project.RootDir, knowledgeDir, config.User.Dir)
}

// GetRegistryClient opens a registry client from the resolved configuration.
// The client is usable even when the registry is not configured; reads return
// empty results and writes report the registry as unavailable.
func GetRegistryClient() (*registry.Client, error) {
	client, err := registry.New(GetConfig().Registry)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to registry: %w", err)
	}
	return client, nil
}

// GetAnalyticsLogger builds the execution history logger rooted in the user
// knowledge directory.
func GetAnalyticsLogger() *analytics.Logger {
	config := GetConfig()
	project := filepath.Base(config.Project.RootDir)
	if project == "." || project == string(filepath.Separator) {
		if wd, err := os.Getwd(); err == nil {
			project = filepath.Base(wd)
		}
	}
	return analytics.NewLogger(afero.NewOsFs(), config.User.Dir, project)
}
