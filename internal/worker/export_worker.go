// Package worker keeps the exported spreadsheet report in sync with
// the record store by reacting to change events.
package worker

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/events"
	"fintrack/internal/export"
	"fintrack/internal/log"
	"fintrack/internal/query"
)

// SnapshotSource is the slice of the query client the worker needs.
type SnapshotSource interface {
	Fetch(ctx context.Context) (query.Snapshot, error)
	Invalidate(collection string)
}

// ExportWorker rebuilds the report view from a fresh snapshot and
// writes it to the configured sink. Change events are debounced so a
// burst of mutations produces one export, not one per message.
type ExportWorker struct {
	source   SnapshotSource
	writer   export.ReportWriter
	period   core.Period
	debounce time.Duration
	logger   *log.Logger

	trigger chan struct{}
}

func NewExportWorker(source SnapshotSource, writer export.ReportWriter, period core.Period, debounce time.Duration, logger *log.Logger) *ExportWorker {
	return &ExportWorker{
		source:   source,
		writer:   writer,
		period:   period,
		debounce: debounce,
		logger:   logger.WithComponent(log.ComponentWorker),
		trigger:  make(chan struct{}, 1),
	}
}

// HandleRecordChange is the AMQP consumer callback. It never fails the
// delivery: the export itself happens later on the Run loop, and a
// missed export self-heals on the next event.
func (w *ExportWorker) HandleRecordChange(msg *events.RecordChangeMessage) error {
	w.logger.Info("record change received",
		log.FieldCollection, msg.Collection,
		log.FieldRecordID, msg.ID,
		log.FieldOperation, msg.Op)

	w.source.Invalidate(msg.Collection)

	select {
	case w.trigger <- struct{}{}:
	default:
		// An export is already pending; this change rides along.
	}
	return nil
}

// Run exports on startup and then after each debounced burst of
// changes, until the context ends.
func (w *ExportWorker) Run(ctx context.Context) error {
	if err := w.ExportOnce(ctx); err != nil {
		w.logger.ErrorContext(ctx, "startup export failed", log.FieldError, err.Error())
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.trigger:
			if w.debounce > 0 {
				timer := time.NewTimer(w.debounce)
			drain:
				for {
					select {
					case <-ctx.Done():
						timer.Stop()
						return ctx.Err()
					case <-w.trigger:
						// Still coalescing; the timer keeps running so a
						// steady stream of changes cannot starve the export.
					case <-timer.C:
						break drain
					}
				}
			}
			if err := w.ExportOnce(ctx); err != nil {
				w.logger.ErrorContext(ctx, "export failed", log.FieldError, err.Error())
			}
		}
	}
}

// ExportOnce fetches a snapshot, rebuilds the report, and writes it.
func (w *ExportWorker) ExportOnce(ctx context.Context) error {
	snap, err := w.source.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch snapshot: %w", err)
	}

	view := core.BuildReport(snap.Transactions, snap.Categories, w.period, time.Now())
	if err := w.writer.WriteReport(ctx, view); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	w.logger.InfoContext(ctx, "report exported",
		log.FieldOperation, log.OpExport,
		log.FieldPeriod, string(w.period),
		"transactions", len(snap.Transactions),
		"months", len(view.Months))
	return nil
}
