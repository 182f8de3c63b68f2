package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rtoki/japan-national-admin-procedures/internal/cli/config"
	"github.com/rtoki/japan-national-admin-procedures/internal/cli/ui"
)

const version = "0.1.0"

var serverFlag string

// rootCmd is the root command
var rootCmd = &cobra.Command{
	Use:     "procctl",
	Short:   "National administrative procedures survey CLI",
	Version: version,
	Long: `A command-line tool for exploring the government procedures survey
(行政手続等オンライン化状況調査). Query the API server for KPI summaries,
frequency aggregations, filtered listings and CSV exports, or convert the
raw survey CSV into the server's snapshot format locally.`,
	Example: `  # Dataset KPI summary
  $ procctl stats

  # Aggregate a column, honoring its canonical value order
  $ procctl agg オンライン化の実施状況 --ordered

  # List procedures of one ministry with at least a million instances
  $ procctl list --ministry 法務省 --count-range 100万件以上

  # Show one procedure in full
  $ procctl get 10310-1

  # Export a filtered subset as CSV
  $ procctl export --search 登記 -o tozi.csv

  # Browse interactively
  $ procctl browse`,
}

// Execute executes the root command
func Execute() error {
	rootCmd.SetVersionTemplate(formatVersion())
	return rootCmd.Execute()
}

func init() {
	// Disable default completion command
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVarP(&serverFlag, "server", "s", "", "API server address (default from ~/.procctl/config.json)")

	// Add subcommands
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(aggCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(browseCmd)

	// Set custom template with bold uppercase headers
	rootCmd.SetUsageTemplate(usageTemplate())
	rootCmd.SetHelpTemplate(usageTemplate())
}

// serverAddress resolves the API server address from the flag or config.
func serverAddress() (string, error) {
	if serverFlag != "" {
		return serverFlag, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return cfg.Server, nil
}

func usageTemplate() string {
	return `{{if .Long}}{{.Long}}

{{end}}` + ui.Styles.Bold.Render("USAGE") + `
  {{.UseLine}}{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{end}}

{{if .HasExample}}` + ui.Styles.Bold.Render("EXAMPLES") + `
{{.Example}}

{{end}}{{if .HasAvailableSubCommands}}` + ui.Styles.Bold.Render("COMMANDS") + `{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableLocalFlags}}` + ui.Styles.Bold.Render("OPTIONS") + `
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.{{end}}
`
}

// formatVersion formats the version output
func formatVersion() string {
	return fmt.Sprintf("procctl version %s\n", version)
}
