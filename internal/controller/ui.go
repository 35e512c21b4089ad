// Package controller provides output adapters for obfuscation results.
package controller

import (
	"context"

	m "shroud.dev/pkg/shroud/internal/model"
)

// UI defines how results reach the user. Code goes to standard output;
// everything informational goes to standard error so that redirected output
// stays valid source.
type UI interface {
	DisplayCode(ctx context.Context, code []byte) error
	DisplayDiff(ctx context.Context, path m.Path, before, after []byte) error
	DisplayMapping(ctx context.Context, mapping *m.RenameMapping)
	DisplayPlan(ctx context.Context, plan m.Plan) error
	DisplayBatchSummary(ctx context.Context, outcomes []m.BatchOutcome)
}
