package model

import (
	"fmt"
	"strings"
)

// DefaultSourcePath is the image used when neither a positional argument
// nor a config file names one.
const DefaultSourcePath = "Minimalist_favicon_design_featuring_a_single_styli.png"

// MaxIconDimension is the largest width or height an ICO directory entry
// can describe. Larger requested sizes are skipped by the encoder.
const MaxIconDimension = 256

// Size is a (width, height) pixel pair of a single icon frame.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Square returns a Size with equal width and height.
func Square(n int) Size {
	return Size{Width: n, Height: n}
}

// String returns the size in "WxH" form (e.g., "64x64").
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsValid reports whether both dimensions are positive.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0
}

// FormatSizes joins sizes into a comma-separated list ("16x16,32x32").
// Returns "-" for an empty list.
func FormatSizes(sizes []Size) string {
	if len(sizes) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(sizes))
	for _, s := range sizes {
		parts = append(parts, s.String())
	}
	return strings.Join(parts, ",")
}

// ExportJob is a single entry of the favicon set: one .ico file written
// relative to the output directory, containing one frame per size.
type ExportJob struct {
	// Name is the target file name, relative to the output directory.
	Name string `json:"name"`

	// Label is the human-readable name used in diagnostics
	// (e.g., "Multi-size favicon").
	Label string `json:"label"`

	// Sizes lists the requested frame sizes. Must not be empty.
	Sizes []Size `json:"sizes"`
}

// Validate checks that the job has a plain file name and at least one size.
func (j ExportJob) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("export job: name must not be empty")
	}
	if strings.ContainsAny(j.Name, `/\`) {
		return fmt.Errorf("export job: name %q must not contain path separators", j.Name)
	}
	if len(j.Sizes) == 0 {
		return fmt.Errorf("export job %q: at least one size is required", j.Name)
	}
	return nil
}

// DefaultJobs returns the fixed favicon set. Jobs 2 and 3 are intentionally
// identical apart from the file name; both names are published favicons.
//
// A new slice is built on every call so callers may modify the result
// without affecting later runs.
func DefaultJobs() []ExportJob {
	return []ExportJob{
		{
			Name:  "alfe_favicon.ico",
			Label: "Multi-size favicon",
			Sizes: []Size{Square(16), Square(32), Square(48), Square(64)},
		},
		{
			Name:  "alfe_favicon_64x64.ico",
			Label: "64x64 favicon",
			Sizes: []Size{Square(64)},
		},
		{
			Name:  "alfe_favicon_clean_64x64.ico",
			Label: "Additional 64x64 favicon",
			Sizes: []Size{Square(64)},
		},
	}
}

// Options is the explicit configuration handed to the exporter. The CLI
// resolves it from arguments, the config file and the working directory, so
// the exporter itself never reads ambient process state.
type Options struct {
	// SourcePath is the image to convert. Not checked for existence until
	// the exporter tries to open it.
	SourcePath string `json:"source"`

	// OutputDir is the directory the .ico files are written to. Created
	// (with parents) when missing.
	OutputDir string `json:"outputDir"`

	// AutoOrient applies the EXIF orientation tag while decoding.
	AutoOrient bool `json:"autoOrient"`
}

// JobResult records the outcome of one ExportJob.
type JobResult struct {
	// Job is the job this result belongs to.
	Job ExportJob

	// Path is the absolute or output-dir-joined path of the target file.
	Path string

	// Frames lists the frame sizes actually written. Empty on failure.
	Frames []Size

	// Err is the failure for this job, nil on success.
	Err error
}

// OK reports whether the job produced its file.
func (r JobResult) OK() bool {
	return r.Err == nil
}

// Report is the summary of one exporter run.
type Report struct {
	SourcePath string
	OutputDir  string
	Jobs       []JobResult
}

// Failed returns the results of the jobs that did not produce a file.
func (r *Report) Failed() []JobResult {
	var failed []JobResult
	for _, j := range r.Jobs {
		if !j.OK() {
			failed = append(failed, j)
		}
	}
	return failed
}

// ExitCode defines the process exit codes of the CLI. These codes allow
// scripts to tell a fatal input problem apart from a completed run.
type ExitCode int

const (
	// ExitSuccess indicates the run completed. Individual job failures do
	// not change this unless --strict is given.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error (bad flags, unreadable
	// config file).
	ExitGeneralError ExitCode = 1

	// ExitSourceNotFound indicates the source image does not exist.
	ExitSourceNotFound ExitCode = 2

	// ExitSourceUndecodable indicates the source image exists but could not
	// be decoded.
	ExitSourceUndecodable ExitCode = 3

	// ExitOutputDirFailed indicates the output directory could not be created.
	ExitOutputDirFailed ExitCode = 4

	// ExitJobsFailed indicates at least one job failed under --strict.
	ExitJobsFailed ExitCode = 5
)

// CLIError is an error that carries a specific exit code.
// Commands return it so Execute can exit with the right status.
type CLIError struct {
	// Code is the exit code to use when this error terminates the process.
	Code ExitCode

	// Message is a human-readable description of what went wrong.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error. Without a
// message the underlying error is returned as is.
func (e *CLIError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
