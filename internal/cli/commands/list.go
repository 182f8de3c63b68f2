package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

var (
	listFilter   filterFlags
	listPage     int
	listPageSize int
)

// listCmd is the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List procedures matching a filter",
	Long: `List procedures as a paginated table. All filter flags combine with AND;
repeated values of one flag combine with OR. Keyword search matches the
procedure name, law, ministry and a dozen other text columns.`,
	Example: `  # First page of everything
  $ procctl list

  # One ministry, implemented procedures only
  $ procctl list --ministry 総務省 --status 1実施済

  # High-volume procedures matching a keyword
  $ procctl list --search 登記 --count-range 100万件以上

  # Saved filter with paging
  $ procctl list -f myfilter.yaml --page 3 --page-size 50`,
	RunE: runList,
}

func init() {
	listFilter.register(listCmd)
	listCmd.Flags().IntVar(&listPage, "page", 1, "page number (1-based)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "rows per page")
	listCmd.SilenceUsage = true
}

func runList(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		ui.PrintError("unexpected argument: %s", args[0])
		fmt.Printf("\nRun '%s --help' for usage.\n", cmd.CommandPath())
		return fmt.Errorf("invalid arguments")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter, err := listFilter.build()
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

	data, err := apiClient.Search(ctx, types.SearchRequest{
		Filter:   filter,
		Page:     listPage,
		PageSize: listPageSize,
	})
	if err != nil {
		ui.PrintError("failed to list procedures: %v", err)
		return fmt.Errorf("list operation failed")
	}

	if len(data.Items) == 0 {
		ui.PrintInfo("no procedures match the filter (total %d)", data.TotalCount)
		return nil
	}

	rows := make([][]string, len(data.Items))
	for i, p := range data.Items {
		rows[i] = []string{
			p.ID,
			p.Name,
			p.Ministry,
			p.OnlineStatus,
			fmt.Sprintf("%d", p.TotalCount),
			fmt.Sprintf("%.2f%%", p.OnlineRate),
		}
	}

	fmt.Println()
	fmt.Println(ui.RenderTable(
		[]string{"手続ID", "手続名", "府省庁", "実施状況", "総件数", "オンライン化率"},
		rows,
	))
	ui.PrintInfo("page %d, showing %d of %d procedures", listPage, len(data.Items), data.TotalCount)

	return nil
}
