package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/favicon-export/internal/icon"
	"github.com/shinji-kodama/favicon-export/internal/model"
)

// NewInspectCommand creates the "inspect" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.ico>...",
		Short: "List the frame sizes stored in .ico files",
		Long: `Decode one or more .ico files and list the dimensions of every frame
they contain, in file order.

Examples:
  favicon-export inspect alfe_favicon.ico
  favicon-export inspect *.ico --json`,

		Args: cobra.MinimumNArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args)
		},
	}
}

// inspectedIcon is the result of decoding one .ico file.
type inspectedIcon struct {
	Path   string
	Frames []model.Size
}

// runInspect decodes every file in paths and prints the frame sizes. The
// first file that cannot be decoded stops the command.
func runInspect(w io.Writer, paths []string) error {
	icons := make([]inspectedIcon, 0, len(paths))
	for _, path := range paths {
		frames, err := icon.Inspect(path)
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to inspect icon", err)
		}
		icons = append(icons, inspectedIcon{Path: path, Frames: frames})
	}

	if IsJSONOutput() {
		return printInspectResultJSON(w, icons)
	}
	printInspectResultText(w, icons)
	return nil
}

type inspectIconJSON struct {
	Path   string   `json:"path"`
	Frames []string `json:"frames"`
}

func printInspectResultJSON(w io.Writer, icons []inspectedIcon) error {
	type resultJSON struct {
		Icons []inspectIconJSON `json:"icons"`
	}

	result := resultJSON{Icons: make([]inspectIconJSON, 0, len(icons))}
	for _, ic := range icons {
		result.Icons = append(result.Icons, inspectIconJSON{
			Path:   ic.Path,
			Frames: sizeStrings(ic.Frames),
		})
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to encode result", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// printInspectResultText prints one row per icon:
//
//	PATH                                     FRAMES  SIZES
//	alfe_favicon.ico                         4       16x16,32x32,48x48,64x64
func printInspectResultText(w io.Writer, icons []inspectedIcon) {
	fmt.Fprintf(w, "%-40s %-7s %s\n", "PATH", "FRAMES", "SIZES")
	for _, ic := range icons {
		fmt.Fprintf(w, "%-40s %-7d %s\n", ic.Path, len(ic.Frames), model.FormatSizes(ic.Frames))
	}
}
