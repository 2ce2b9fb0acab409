// Package export writes assembled report views to external sinks. The
// only production sink is a Google Sheets spreadsheet.
package export

import (
	"context"

	"fintrack/internal/core"
)

// ReportWriter is the sink the worker pushes rebuilt reports to.
type ReportWriter interface {
	WriteReport(ctx context.Context, view core.ReportView) error
}
