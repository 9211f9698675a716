// Package cli implements the cobra-based CLI of favicon-export.
//
// The root command performs the export itself; the inspect and jobs
// subcommands are defined in their own files. This file defines the root
// command, its flags and the exit code handling shared by all commands.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/favicon-export/internal/config"
	"github.com/shinji-kodama/favicon-export/internal/console"
	"github.com/shinji-kodama/favicon-export/internal/exporter"
	"github.com/shinji-kodama/favicon-export/internal/model"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, the [DEBUG]/[ERROR] diagnostics move to stderr so stdout
	// carries nothing but the JSON document.
	jsonOutput bool

	// verbose enables the [verbose] trace lines on stderr.
	verbose bool
)

// Version, Commit and Date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// exportFlags holds the flag values of the root (export) command.
type exportFlags struct {
	// outputDir overrides the output directory. Empty means "use the config
	// file value or the working directory".
	outputDir string

	// configPath points at an explicit config file. Empty means
	// auto-discovery in the working directory.
	configPath string

	// autoOrient applies the EXIF orientation tag while decoding.
	autoOrient bool

	// strict turns failed jobs into a non-zero exit status.
	strict bool
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
func NewRootCommand() *cobra.Command {
	flags := &exportFlags{}

	rootCmd := &cobra.Command{
		Use:   "favicon-export [source_image_path]",
		Short: "Convert an image into the site's favicon set",
		Long: `favicon-export converts a source image into three .ico files:

  alfe_favicon.ico              16x16, 32x32, 48x48 and 64x64 frames
  alfe_favicon_64x64.ico        a single 64x64 frame
  alfe_favicon_clean_64x64.ico  a single 64x64 frame

The files are written to the working directory unless --output-dir or a
config file (.favicon-export.yml, .favicon-export.yaml, .favicon-export.json
or .favicon-export.toml) names another one. Missing directories are created.

Examples:
  favicon-export
  favicon-export logo.png
  favicon-export logo.png --output-dir public/
  favicon-export logo.png --strict --json`,

		Args: cobra.MaximumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args, flags)
		},

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	rootCmd.Flags().StringVarP(&flags.outputDir, "output-dir", "o", "",
		"Directory to write the favicons to (default: working directory)")
	rootCmd.Flags().StringVarP(&flags.configPath, "config", "c", "",
		"Config file to use (default: auto-discover in the working directory)")
	rootCmd.Flags().BoolVar(&flags.autoOrient, "auto-orient", false,
		"Apply the EXIF orientation tag when decoding the source image")
	rootCmd.Flags().BoolVar(&flags.strict, "strict", false,
		"Exit with a non-zero status when any favicon could not be written")

	rootCmd.AddCommand(NewInspectCommand())
	rootCmd.AddCommand(NewJobsCommand())

	return rootCmd
}

// runExport is the main logic of the root command. It resolves the
// options, runs the exporter and converts the outcome into an exit status.
func runExport(cmd *cobra.Command, args []string, flags *exportFlags) error {
	out := newPrinter(cmd)

	// Step 1: The working directory is both the default output directory
	// and the place config files are discovered in.
	cwd, err := os.Getwd()
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to determine working directory", err)
	}

	// Step 2: Load the config file, if any.
	file, err := loadConfig(flags.configPath, cwd, out)
	if err != nil {
		return err
	}

	// Step 3: Merge positional argument, flags, config and defaults.
	cf := config.Flags{OutputDir: flags.outputDir}
	if len(args) == 1 {
		cf.SourcePath = &args[0]
	}
	if cmd.Flags().Changed("auto-orient") {
		cf.AutoOrient = &flags.autoOrient
	}
	opts := config.Resolve(cf, file, cwd)
	out.Verbosef("Resolved options: source=%s outputDir=%s autoOrient=%t",
		opts.SourcePath, opts.OutputDir, opts.AutoOrient)

	// Step 4: Run the export. Only fatal errors are returned here; failed
	// jobs are recorded in the report.
	// The exporter has already printed an [ERROR] line for fatal errors, so
	// the CLIError carries no message of its own.
	report, err := exporter.New(out).Run(opts)
	if err != nil {
		return model.WrapCLIError(model.ExitCodeFor(err), "", err)
	}

	// Step 5: Emit the structured report when requested.
	if IsJSONOutput() {
		if err := printReportJSON(cmd.OutOrStdout(), report); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to write report", err)
		}
	}

	// Step 6: Under --strict, any failed job fails the process.
	if failed := report.Failed(); flags.strict && len(failed) > 0 {
		return model.NewCLIError(model.ExitJobsFailed,
			fmt.Sprintf("%d of %d favicons could not be written", len(failed), len(report.Jobs)))
	}

	return nil
}

// loadConfig loads the explicit config file, or the one discovered in cwd.
// Returns nil without error when no config file is in use.
func loadConfig(explicit, cwd string, out *console.Printer) (*config.File, error) {
	path := explicit
	if path == "" {
		path = config.Find(cwd)
	}
	if path == "" {
		out.Verbosef("No config file found in %s", cwd)
		return nil, nil
	}

	out.Verbosef("Using config file %s", path)
	file, err := config.Load(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitGeneralError, "failed to load config", err)
	}
	return file, nil
}

// newPrinter builds the diagnostics printer for cmd. Under --json the
// [DEBUG]/[ERROR] lines go to stderr so stdout stays machine-readable.
func newPrinter(cmd *cobra.Command) *console.Printer {
	out := cmd.OutOrStdout()
	if IsJSONOutput() {
		out = cmd.ErrOrStderr()
	}
	return console.New(out, cmd.ErrOrStderr(), verbose)
}

// reportJSON is the --json output of the export command.
type reportJSON struct {
	Source    string          `json:"source"`
	OutputDir string          `json:"outputDir"`
	Jobs      []jobResultJSON `json:"jobs"`
}

// jobResultJSON is the JSON form of a single job result.
type jobResultJSON struct {
	Name   string   `json:"name"`
	Path   string   `json:"path"`
	Sizes  []string `json:"sizes"`
	Frames []string `json:"frames"`
	OK     bool     `json:"ok"`
	Error  string   `json:"error,omitempty"`
}

// buildReportJSON converts a report into its JSON representation.
func buildReportJSON(report *model.Report) reportJSON {
	result := reportJSON{
		Source:    report.SourcePath,
		OutputDir: report.OutputDir,
		// Use an empty slice instead of nil so the output shows [] not null.
		Jobs: make([]jobResultJSON, 0, len(report.Jobs)),
	}

	for _, r := range report.Jobs {
		entry := jobResultJSON{
			Name:   r.Job.Name,
			Path:   r.Path,
			Sizes:  sizeStrings(r.Job.Sizes),
			Frames: sizeStrings(r.Frames),
			OK:     r.OK(),
		}
		if r.Err != nil {
			entry.Error = r.Err.Error()
		}
		result.Jobs = append(result.Jobs, entry)
	}
	return result
}

func printReportJSON(w io.Writer, report *model.Report) error {
	data, err := json.MarshalIndent(buildReportJSON(report), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// sizeStrings renders sizes as "WxH" strings, never returning nil.
func sizeStrings(sizes []model.Size) []string {
	out := make([]string, 0, len(sizes))
	for _, s := range sizes {
		out = append(out, s.String())
	}
	return out
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		var cliErr *model.CLIError
		if errors.As(err, &cliErr) {
			printError(os.Stderr, cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error (unknown flag, wrong argument count): exit code 1.
		printError(os.Stderr, err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
//
// An empty message marks an error the command has already reported on the
// console; text mode prints nothing for it, JSON mode uses the underlying
// error as the message.
func printError(w io.Writer, message string, underlying error) {
	if jsonOutput {
		if message == "" && underlying != nil {
			message = underlying.Error()
		}
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode; stdout is reserved for
		// successful command output.
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}

	switch {
	case message == "":
		// Already reported.
	case underlying != nil:
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	default:
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
