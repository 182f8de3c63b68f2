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
	aggFilter     filterFlags
	aggKey        string
	aggOrdered    bool
	aggTopN       int
	aggOtherLabel string
	aggWidth      int
)

// aggCmd is the agg command
var aggCmd = &cobra.Command{
	Use:   "agg <column>",
	Short: "Aggregate one column into a frequency chart",
	Long: `Count the distinct values of one column over the filtered rows and
render the result as a bar chart. Multi-value columns are split into
individual values before counting, so one procedure can contribute to
several bars.

Run 'procctl list --help' for the shared filter flags. Column keys are
the survey column names; 'procctl stats' shows the common ones.`,
	Example: `  # Online implementation status, dataset wide
  $ procctl agg オンライン化の実施状況

  # Procedure types within one ministry, largest ten plus the rest
  $ procctl agg 手続類型 --ministry 法務省 --top 10

  # Keep the survey's own category order
  $ procctl agg オンライン化の実施状況 --ordered`,
	Args: cobra.ExactArgs(1),
	RunE: runAgg,
}

func init() {
	aggFilter.register(aggCmd)
	aggCmd.Flags().StringVar(&aggKey, "key", "", "cache key hint forwarded to the server")
	aggCmd.Flags().BoolVar(&aggOrdered, "ordered", false, "keep the column's canonical category order")
	aggCmd.Flags().IntVar(&aggTopN, "top", 0, "keep the N largest values and fold the rest")
	aggCmd.Flags().StringVar(&aggOtherLabel, "other-label", "", "label for the folded bucket (default その他)")
	aggCmd.Flags().IntVar(&aggWidth, "width", 40, "bar chart width in cells")
	aggCmd.SilenceUsage = true
}

func runAgg(cmd *cobra.Command, args []string) error {
	column := args[0]

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter, err := aggFilter.build()
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

	ft, err := apiClient.Aggregate(ctx, types.AggregateRequest{
		Column:     column,
		Key:        aggKey,
		Ordered:    aggOrdered,
		TopN:       aggTopN,
		OtherLabel: aggOtherLabel,
		Filter:     filter,
	})
	if err != nil {
		ui.PrintError("failed to aggregate '%s': %v", column, err)
		return fmt.Errorf("aggregate operation failed")
	}

	fmt.Println()
	ui.PrintBold(column)
	fmt.Println(ui.RenderBarChart(ft, aggWidth))
	return nil
}
