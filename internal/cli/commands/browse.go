package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/tui"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

var browseFilter filterFlags

// browseCmd is the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse procedures interactively",
	Long: `Open a full-screen browser over the survey. Type a keyword and press
Enter to search, use the arrow keys to move and page, and Tab to open
the full detail of the selected procedure.

Filter flags passed on the command line stay applied underneath the
interactive keyword.`,
	Example: `  # Browse everything
  $ procctl browse

  # Browse one ministry's procedures
  $ procctl browse --ministry 国土交通省`,
	RunE: runBrowse,
}

func init() {
	browseFilter.register(browseCmd)
	browseCmd.SilenceUsage = true
}

func runBrowse(cmd *cobra.Command, args []string) error {
	filter, err := browseFilter.build()
	if err != nil {
		ui.PrintError("invalid filter: %v", err)
		return fmt.Errorf("invalid filter")
	}

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

	if err := tui.NewBrowseProgram(apiClient, filter).Run(); err != nil {
		ui.PrintError("browser exited with an error: %v", err)
		return fmt.Errorf("browse failed")
	}
	return nil
}
