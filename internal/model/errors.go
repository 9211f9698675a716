package model

import (
	"errors"
	"fmt"
)

// Fatal errors. Any of these terminates a run before a single job starts.
var (
	// ErrSourceNotFound means the source image path does not exist.
	ErrSourceNotFound = errors.New("source image not found")

	// ErrSourceUndecodable means the source image exists but no registered
	// decoder accepted it (corrupt file, unknown format, a directory, ...).
	ErrSourceUndecodable = errors.New("source image could not be decoded")

	// ErrOutputDir means the output directory could not be created.
	ErrOutputDir = errors.New("output directory could not be created")
)

// Job errors. These only ever fail the job they occur in.
var (
	// ErrNoUsableSizes means every requested size was larger than the source
	// image or larger than MaxIconDimension, so no frame could be produced.
	ErrNoUsableSizes = errors.New("no requested size fits the source image")

	// ErrInvalidSize means a requested size has a non-positive dimension.
	ErrInvalidSize = errors.New("invalid icon size")
)

// JobError wraps a failure of a single export job with the job's file name.
type JobError struct {
	Job string
	Err error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("%s: %v", e.Job, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// ExitCodeFor maps an exporter error onto the CLI exit code. Unknown errors
// map to ExitGeneralError.
func ExitCodeFor(err error) ExitCode {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrSourceNotFound):
		return ExitSourceNotFound
	case errors.Is(err, ErrSourceUndecodable):
		return ExitSourceUndecodable
	case errors.Is(err, ErrOutputDir):
		return ExitOutputDirFailed
	default:
		return ExitGeneralError
	}
}
