/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/josephgoksu/zettelwing/internal/analytics"
	"github.com/josephgoksu/zettelwing/internal/logger"
	zwmcp "github.com/josephgoksu/zettelwing/mcp"
	"github.com/josephgoksu/zettelwing/types"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server for AI tool integration",
	Long: `Start a Model Context Protocol (MCP) server so AI assistants can search,
read, and manage knowledge entries across the project, user, and registry tiers.

The MCP server runs over stdin/stdout and provides tools for:
- Searching entries with relevance ranking
- Retrieving full entry content with relationships
- Creating, updating, deleting, and publishing entries
- Linking entries and building collections
- Usage guidance

Example usage with Claude Code:
  zettelwing mcp

The server will run until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
	// MCP server inherits verbose flag from root command
}

func runMCPServer(ctx context.Context) error {
	logger.SetCommand("mcp")

	localStore := GetLocalStore()
	logger.SetBasePath(localStore.UserDir())

	registryClient, err := GetRegistryClient()
	if err != nil {
		return err
	}
	defer func() { _ = registryClient.Close() }()

	history := GetAnalyticsLogger()

	zwmcp.ConfigureHooks(zwmcp.Hooks{
		GetConfig: GetConfig,
		LogInfo:   logInfo,
		LogError:  logError,
		LogToolCall: func(name string, params interface{}) {
			logToolCall(name, params)
		},
		RecordExecution: func(exec analytics.Execution) {
			if err := history.Record(exec); err != nil {
				logError(fmt.Errorf("record execution: %w", err))
			}
		},
		GetVersion: func() string { return version },
	})

	// Create MCP server
	impl := &mcp.Implementation{
		Name:    "zettelwing",
		Version: version,
	}

	serverOpts := &mcp.ServerOptions{}

	server := mcp.NewServer(impl, serverOpts)

	if err := zwmcp.RegisterTools(server, zwmcp.Deps{
		Local:    localStore,
		Registry: registryClient,
	}); err != nil {
		return fmt.Errorf("failed to register MCP tools: %w", err)
	}

	logInfo("MCP server starting on stdio")

	// Run the server over stdin/stdout
	if err := server.Run(ctx, mcp.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func logError(err error) {
	if viper.GetBool(types.ConfigKeyVerbose) {
		log.Printf("[MCP ERROR] %v", err)
	}
}

func logInfo(msg string) {
	if viper.GetBool(types.ConfigKeyVerbose) {
		log.Printf("[MCP INFO] %s", msg)
	}
}

func logToolCall(toolName string, params interface{}) {
	if viper.GetBool(types.ConfigKeyVerbose) {
		log.Printf("[MCP TOOL] %s called with params: %+v", toolName, params)
	}
}
