package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/knct-dev/knct/pkg/cli"
	"github.com/knct-dev/knct/pkg/console"
	"github.com/knct-dev/knct/pkg/constants"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   constants.CLIName,
	Short: "K-NCT Korean grammar-error corpus toolkit",
	Long: `Tools for the K-NCT grammar-error correction corpus.

The corpus pairs error-annotated Korean sentences with their corrected
forms. Sentences carry inline <eN>...</eN> tags marking each error; the
parse command strips the tags and reports the annotated spans with their
offsets into the clean sentence.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <dataset>",
	Short: "Validate a dataset file against the K-NCT record schema",
	Long: `Validate a dataset file against the K-NCT record schema.

Examples:
  ` + constants.CLIName + ` validate ` + constants.DefaultDatasetFile + `
  ` + constants.CLIName + ` validate ` + constants.DefaultDatasetFile + ` --watch

The --watch flag keeps watching the file and re-validates on every save.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		if watch {
			if err := cli.WatchDataset(args[0], verbose); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			return
		}
		if err := cli.ValidateDataset(args[0], verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var parseCmd = &cobra.Command{
	Use:   "parse <dataset>",
	Short: "Strip error tags and report annotated spans",
	Long: `Strip error tags and report the annotated spans with offsets into
the clean sentence.

Examples:
  ` + constants.CLIName + ` parse ` + constants.DefaultDatasetFile + ` --index 12
  ` + constants.CLIName + ` parse ` + constants.DefaultDatasetFile + ` --format json

Without --index every entry is parsed; entries with malformed annotations
are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, _ := cmd.Flags().GetInt("index")
		format, _ := cmd.Flags().GetString("format")
		if err := cli.ParseEntries(args[0], index, format, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var showCmd = &cobra.Command{
	Use:   "show <dataset>",
	Short: "Show one entry with its metadata and annotated spans",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, _ := cmd.Flags().GetInt("index")
		if index < 0 {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage("show requires --index"))
			os.Exit(1)
		}
		if err := cli.ShowEntry(args[0], index, verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <dataset>",
	Short: "Aggregate span counts by error type, domain and style",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ShowStats(args[0], verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", constants.CLIName, version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	validateCmd.Flags().Bool("watch", false, "re-validate when the file changes")
	parseCmd.Flags().Int("index", -1, "dataset index of a single entry to parse")
	parseCmd.Flags().String("format", "text", "output format: text, json or yaml")
	showCmd.Flags().Int("index", -1, "dataset index of the entry to show")

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
