package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

// getCmd is the get command
var getCmd = &cobra.Command{
	Use:   "get <procedure-id>",
	Short: "Show the full detail of one procedure",
	Long: `Show every surveyed field of a single procedure, identified by its
procedure ID (the 手続ID column, e.g. 48-1).`,
	Example: `  # Show a procedure
  $ procctl get 48-1

  # Against a non-default server
  $ procctl get 48-1 -s http://survey.example.com:8080`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.SilenceUsage = true
}

func runGet(cmd *cobra.Command, args []string) error {
	procedureID := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	server, err := serverAddress()
	if err != nil {
		ui.PrintError("failed to load config: %v", err)
		return fmt.Errorf("config load failed")
	}
	apiClient, err := client.NewAPIClient(server)
	if err != nil {
		ui.PrintError("failed to create client: %v", err)
		return fmt.Errorf("client creation failed")
	}

	detail, err := apiClient.Get(ctx, procedureID)
	if err != nil {
		ui.PrintError("failed to get procedure '%s': %v", procedureID, err)
		return fmt.Errorf("get operation failed")
	}

	fmt.Println()
	fmt.Println(ui.RenderDetail(detail))
	return nil
}
