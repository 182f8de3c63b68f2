package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
	"github.com/rtoki/japan-national-admin-procedures/internal/dataset"
)

var (
	convertCSVPath      string
	convertSnapshotPath string
	convertYes          bool
)

// convertCmd parses the survey CSV and writes the SQLite snapshot the
// server loads at startup. It runs locally, without the API server.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the survey CSV into a SQLite snapshot",
	Long: `Parse the raw survey CSV (BOM, two preamble rows, 38 columns) and write
the SQLite snapshot the server prefers at startup. Reparsing the CSV takes
seconds; loading the snapshot takes milliseconds.`,
	Example: `  # Convert with explicit paths
  $ procctl convert --csv data/procedures.csv --snapshot data/procedures.db

  # Overwrite an existing snapshot without confirmation
  $ procctl convert --csv data/procedures.csv --snapshot data/procedures.db --yes`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertCSVPath, "csv", "data/procedures.csv", "path to the survey CSV")
	convertCmd.Flags().StringVar(&convertSnapshotPath, "snapshot", "data/procedures.db", "path of the snapshot to write")
	convertCmd.Flags().BoolVarP(&convertYes, "yes", "y", false, "overwrite an existing snapshot without asking")
	convertCmd.SilenceUsage = true
}

func runConvert(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(convertCSVPath); err != nil {
		ui.PrintError("cannot read CSV: %v", err)
		return fmt.Errorf("csv not readable")
	}

	if _, err := os.Stat(convertSnapshotPath); err == nil && !convertYes {
		overwrite := false
		prompt := &survey.Confirm{
			Message: fmt.Sprintf("Snapshot %s exists. Overwrite?", convertSnapshotPath),
		}
		if err := survey.AskOne(prompt, &overwrite); err != nil {
			return err
		}
		if !overwrite {
			ui.PrintInfo("aborted")
			return nil
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	repo := dataset.NewRepository(convertCSVPath, convertSnapshotPath, slog.Default())
	rows, err := repo.Convert(ctx)
	if err != nil {
		ui.PrintError("conversion failed: %v", err)
		return fmt.Errorf("conversion failed")
	}

	ui.PrintSuccess("wrote %s (%d rows, %s)", convertSnapshotPath, rows, time.Since(start).Round(time.Millisecond))
	return nil
}
