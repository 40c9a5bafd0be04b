// Package runner drives a full run: resolve an origin, acquire transcripts
// for the selected items, then refine each transcript under each configured
// style and write the resulting documents.
package runner

import "context"

// Runner executes one origin end to end. Only source resolution aborts a
// run with an error; item-level problems are reported in the RunReport.
type Runner interface {
	Run(ctx context.Context, origin string) (RunReport, error)
}
