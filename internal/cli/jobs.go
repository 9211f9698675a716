package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/favicon-export/internal/model"
)

// NewJobsCommand creates the "jobs" cobra command, which prints the fixed
// list of icons the export writes.
func NewJobsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List the favicon files written by an export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJobs(cmd.OutOrStdout(), model.DefaultJobs())
		},
	}
}

func printJobs(w io.Writer, jobs []model.ExportJob) error {
	if IsJSONOutput() {
		type jobJSON struct {
			Name  string   `json:"name"`
			Label string   `json:"label"`
			Sizes []string `json:"sizes"`
		}
		type resultJSON struct {
			Jobs []jobJSON `json:"jobs"`
		}

		result := resultJSON{Jobs: make([]jobJSON, 0, len(jobs))}
		for _, j := range jobs {
			result.Jobs = append(result.Jobs, jobJSON{Name: j.Name, Label: j.Label, Sizes: sizeStrings(j.Sizes)})
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "failed to encode result", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	fmt.Fprintf(w, "%-30s %-26s %s\n", "NAME", "LABEL", "SIZES")
	for _, j := range jobs {
		fmt.Fprintf(w, "%-30s %-26s %s\n", j.Name, j.Label, model.FormatSizes(j.Sizes))
	}
	return nil
}
