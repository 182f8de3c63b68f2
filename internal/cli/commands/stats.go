package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

var (
	statsFilter     filterFlags
	statsMinistries bool
	statsLawTypes   bool
	statsLaws       bool
	statsSystems    bool
	statsLimit      int
)

// statsCmd is the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Dataset KPI summary and breakdown statistics",
	Long: `Show the dataset-level KPI figures (procedure count, instance counts and
the overall online rate), optionally restricted to a filtered subset.

Breakdowns per ministry, law category, individual law and information
system are available behind flags.`,
	Example: `  # Overall KPI figures
  $ procctl stats

  # KPI figures for one ministry
  $ procctl stats --ministry 厚生労働省

  # Per-ministry online rates, top laws and system volumes
  $ procctl stats --ministries --laws --systems --limit 15

  # Law category distribution
  $ procctl stats --law-types`,
	RunE: runStats,
}

func init() {
	statsFilter.register(statsCmd)
	statsCmd.Flags().BoolVar(&statsMinistries, "ministries", false, "per-ministry procedure counts and online rates")
	statsCmd.Flags().BoolVar(&statsLawTypes, "law-types", false, "law category distribution")
	statsCmd.Flags().BoolVar(&statsLaws, "laws", false, "laws with the most procedures")
	statsCmd.Flags().BoolVar(&statsSystems, "systems", false, "per-system procedure counts and online rates")
	statsCmd.Flags().IntVar(&statsLimit, "limit", 10, "row cap for breakdown tables")
	statsCmd.SilenceUsage = true
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	filter, err := statsFilter.build()
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

	summary, err := apiClient.Summary(ctx, &filter)
	if err != nil {
		ui.PrintError("failed to fetch summary: %v", err)
		return fmt.Errorf("stats failed")
	}
	fmt.Println()
	fmt.Println(ui.RenderSummary(summary))

	if statsMinistries {
		stats, err := apiClient.MinistryStats(ctx, filter, statsLimit)
		if err != nil {
			ui.PrintError("failed to fetch ministry stats: %v", err)
			return fmt.Errorf("stats failed")
		}
		rows := make([][]string, len(stats))
		for i, st := range stats {
			rows[i] = []string{
				st.Ministry,
				fmt.Sprintf("%d", st.Procedures),
				fmt.Sprintf("%d", st.TotalCount),
				fmt.Sprintf("%.2f%%", st.OnlineRate),
			}
		}
		ui.PrintBold("\n府省庁別オンライン化率")
		fmt.Println(ui.RenderTable([]string{"府省庁", "手続数", "総件数", "オンライン化率"}, rows))
	}

	if statsLawTypes {
		ft, err := apiClient.LawTypes(ctx, filter)
		if err != nil {
			ui.PrintError("failed to fetch law types: %v", err)
			return fmt.Errorf("stats failed")
		}
		ui.PrintBold("\n法令種別の分布")
		fmt.Println(ui.RenderBarChart(ft, 40))
	}

	if statsLaws {
		stats, err := apiClient.TopLaws(ctx, filter, statsLimit)
		if err != nil {
			ui.PrintError("failed to fetch top laws: %v", err)
			return fmt.Errorf("stats failed")
		}
		rows := make([][]string, len(stats))
		for i, st := range stats {
			rows[i] = []string{
				st.LawName,
				fmt.Sprintf("%d", st.Procedures),
				fmt.Sprintf("%d", st.Online),
				fmt.Sprintf("%.2f%%", st.OnlineRate),
			}
		}
		ui.PrintBold("\n手続数の多い法令")
		fmt.Println(ui.RenderTable([]string{"法令名", "手続数", "オンライン実施", "実施率"}, rows))
	}

	if statsSystems {
		stats, err := apiClient.SystemStats(ctx, filter, statsLimit)
		if err != nil {
			ui.PrintError("failed to fetch system stats: %v", err)
			return fmt.Errorf("stats failed")
		}
		rows := make([][]string, len(stats))
		for i, st := range stats {
			rows[i] = []string{
				st.System,
				fmt.Sprintf("%d", st.Procedures),
				fmt.Sprintf("%d", st.TotalCount),
				fmt.Sprintf("%.2f%%", st.OnlineRate),
			}
		}
		ui.PrintBold("\n情報システム別")
		fmt.Println(ui.RenderTable([]string{"情報システム", "手続数", "総件数", "オンライン化率"}, rows))
	}

	return nil
}
