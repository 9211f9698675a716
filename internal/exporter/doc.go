// Package exporter implements the favicon export run: resolve the source,
// make sure the output directory exists, decode the image once and write
// every icon of the fixed job list.
//
// Failure semantics:
//   - a missing or undecodable source image (and an output directory that
//     cannot be created) aborts the run before any file is written;
//   - a failing job is reported and recorded, and the remaining jobs still
//     run. A job failure never escapes Run.
//
// All progress is printed through a console.Printer as [DEBUG] and [ERROR]
// lines. The structured Report returned by Run carries the same outcome for
// callers that need it (--json, --strict and tests).
package exporter
