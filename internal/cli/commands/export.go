package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/client"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/types"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

var (
	exportFilter  filterFlags
	exportOutput  string
	exportColumns []string
	exportPick    bool
)

// exportCmd is the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export filtered procedures as CSV",
	Long: `Export the filtered rows as a CSV file. The file starts with a UTF-8
byte order mark so spreadsheet software opens it with the right encoding.

Columns default to the full survey projection; restrict them with
--columns or pick them interactively with --pick.`,
	Example: `  # Everything matching a ministry, default columns
  $ procctl export --ministry 総務省 -o soumu.csv

  # A slim projection
  $ procctl export --search 登記 --columns 手続ID,手続名,総手続件数

  # Pick columns interactively
  $ procctl export -f myfilter.yaml --pick`,
	RunE: runExport,
}

func init() {
	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "procedures.csv", "output file path")
	exportCmd.Flags().StringSliceVar(&exportColumns, "columns", nil, "columns to export (comma separated)")
	exportCmd.Flags().BoolVar(&exportPick, "pick", false, "pick the columns interactively")
	exportCmd.SilenceUsage = true
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	filter, err := exportFilter.build()
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

	columns := exportColumns
	if exportPick {
		columns, err = pickColumns(ctx, apiClient)
		if err != nil {
			ui.PrintError("column selection failed: %v", err)
			return fmt.Errorf("column selection failed")
		}
	}

	data, err := apiClient.Export(ctx, types.ExportRequest{
		Filter:  filter,
		Columns: columns,
	})
	if err != nil {
		ui.PrintError("failed to export: %v", err)
		return fmt.Errorf("export operation failed")
	}

	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		ui.PrintError("failed to write '%s': %v", exportOutput, err)
		return fmt.Errorf("file write failed")
	}

	ui.PrintSuccess("Exported %d bytes to %s", len(data), exportOutput)
	return nil
}

// pickColumns lets the user choose export columns from the server's schema.
func pickColumns(ctx context.Context, apiClient *client.APIClient) ([]string, error) {
	defs, err := apiClient.Fields(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch field definitions: %w", err)
	}

	options := make([]string, len(defs))
	for i, d := range defs {
		options[i] = d.Key
	}

	var picked []string
	prompt := &survey.MultiSelect{
		Message:  "Columns to export:",
		Options:  options,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &picked, survey.WithValidator(survey.Required)); err != nil {
		return nil, err
	}
	return picked, nil
}
