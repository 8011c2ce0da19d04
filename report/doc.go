// Package report renders the roster catalog: a fixed succession of
// derived views written to an io.Writer, one section at a time.
//
//	err := report.Run(ctx, os.Stdout, roster.Default())
//
// Each section is computed with the pipeline package from a fresh source,
// traced as its own span, and logged at debug level. A failed write stops
// the run with an OUTPUT_FAILED error naming the section.
package report
