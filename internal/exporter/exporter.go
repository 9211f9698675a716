package exporter

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"github.com/shinji-kodama/favicon-export/internal/console"
	"github.com/shinji-kodama/favicon-export/internal/icon"
	"github.com/shinji-kodama/favicon-export/internal/model"
	"github.com/shinji-kodama/favicon-export/internal/source"
)

// Exporter converts one source image into the favicon set.
//
// It is safe to reuse across runs; every Run starts from a fresh copy of
// the job list.
type Exporter struct {
	// encoder renders and writes each .ico file.
	encoder *icon.Encoder

	// out receives the [DEBUG]/[ERROR]/[verbose] diagnostics.
	out *console.Printer
}

// New creates an Exporter that reports through out.
func New(out *console.Printer) *Exporter {
	return &Exporter{
		encoder: icon.NewEncoder(),
		out:     out,
	}
}

// Run executes a full export for opts.
//
// The returned Report is never nil. The error is non-nil only for fatal
// failures; it wraps model.ErrOutputDir, model.ErrSourceNotFound or
// model.ErrSourceUndecodable. Per-job failures are recorded in
// Report.Jobs instead.
func (e *Exporter) Run(opts model.Options) (*model.Report, error) {
	report := &model.Report{
		SourcePath: opts.SourcePath,
		OutputDir:  opts.OutputDir,
	}

	// Step 1: Resolve the input path. Existence is only checked by the
	// decode attempt in step 3.
	e.out.Debugf("Using image: %s", opts.SourcePath)

	// Step 2: Make sure the output directory exists.
	e.out.Debugf("Using output directory for favicons => %s", opts.OutputDir)
	if err := e.ensureDir(opts.OutputDir); err != nil {
		e.out.Errorf("Could not create the output directory: %v", err)
		return report, err
	}

	// Step 3: Decode the source image. Any failure here aborts the run.
	img, err := source.Open(opts.SourcePath, opts.AutoOrient)
	if err != nil {
		if errors.Is(err, model.ErrSourceNotFound) {
			e.out.Errorf("The provided image file was not found. Aborting.")
		} else {
			e.out.Errorf("Could not open the image: %v", err)
		}
		return report, err
	}
	b := img.Bounds()
	e.out.Verbosef("Decoded %s (%dx%d)", opts.SourcePath, b.Dx(), b.Dy())

	// Step 4: Run every job behind the same error boundary.
	for _, job := range model.DefaultJobs() {
		report.Jobs = append(report.Jobs, e.runJob(img, opts.OutputDir, job))
	}

	return report, nil
}

// ensureDir creates dir (with parents) when it does not exist. An existing
// non-directory at that path is an error.
func (e *Exporter) ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("%w: %s is not a directory", model.ErrOutputDir, dir)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("%w: %v", model.ErrOutputDir, err)
	}

	e.out.Debugf("Creating directory => %s", dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %v", model.ErrOutputDir, err)
	}
	return nil
}

// runJob writes a single icon and converts every failure, including a
// panic inside the image libraries, into the job's result.
func (e *Exporter) runJob(img image.Image, dir string, job model.ExportJob) (result model.JobResult) {
	path := filepath.Join(dir, job.Name)
	result = model.JobResult{Job: job, Path: path}

	defer func() {
		if r := recover(); r != nil {
			result.Frames = nil
			result.Err = &model.JobError{Job: job.Name, Err: fmt.Errorf("panic: %v", r)}
			e.out.Errorf("Failed to save %s: %v", lowerFirst(job.Label), result.Err)
		}
	}()

	if err := job.Validate(); err != nil {
		result.Err = &model.JobError{Job: job.Name, Err: err}
		e.out.Errorf("Failed to save %s: %v", lowerFirst(job.Label), err)
		return result
	}

	frames, err := e.encoder.WriteFile(path, img, job.Sizes)
	if err != nil {
		result.Err = &model.JobError{Job: job.Name, Err: err}
		e.out.Errorf("Failed to save %s: %v", lowerFirst(job.Label), err)
		return result
	}

	result.Frames = frames
	e.out.Verbosef("%s frames: %s", job.Name, model.FormatSizes(frames))
	e.out.Debugf("%s saved as %s", job.Label, path)
	return result
}

// lowerFirst lower-cases the first letter of a label so it reads naturally
// mid-sentence ("Failed to save multi-size favicon").
func lowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
