// Package model defines the domain types and value objects for the
// favicon-export CLI.
//
// This package contains pure data structures with no external dependencies.
// All entities (Size, ExportJob, Options, Report) are transient, in-process
// values that live for the duration of a single run. Nothing is persisted
// besides the generated .ico files themselves.
//
// The package also defines exit codes (ExitCode), the sentinel errors of the
// export pipeline, and a custom error type (CLIError) that carries exit codes
// for proper OS process exit handling.
package model
