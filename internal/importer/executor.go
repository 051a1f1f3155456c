package importer

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/salesflow/salesflow/internal/crm"
	"github.com/salesflow/salesflow/internal/schema"
)

// Executor runs the per-row map/commit loop. Width controls how many
// persistence calls may be in flight at once; width <= 1 is strictly
// sequential. Regardless of width, outcomes are emitted strictly in row
// order, so error row numbers stay meaningful and progress stays
// monotonic.
type Executor struct {
	creator crm.RecordCreator
	width   int
}

// NewExecutor creates an executor committing through creator with the
// given concurrency width.
func NewExecutor(creator crm.RecordCreator, width int) *Executor {
	if width < 1 {
		width = 1
	}
	return &Executor{creator: creator, width: width}
}

// Run processes every row and emits exactly one outcome per row, in row
// order. A persistence failure for one record never stops later records,
// and prior successful creates are never undone. The context is checked
// between rows; cancellation returns ctx.Err() without emitting outcomes
// for the remaining rows.
func (e *Executor) Run(ctx context.Context, def schema.Definition, rows []RawRow, emit func(RowOutcome)) error {
	if e.width <= 1 {
		return e.runSequential(ctx, def, rows, emit)
	}
	return e.runConcurrent(ctx, def, rows, emit)
}

func (e *Executor) runSequential(ctx context.Context, def schema.Definition, rows []RawRow, emit func(RowOutcome)) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(e.processRow(ctx, def, row))
	}
	return nil
}

// runConcurrent keeps up to width creates in flight. Completions land in a
// per-row slot and are emitted by walking the slots in order, so the
// observable outcome sequence is identical to the sequential path.
func (e *Executor) runConcurrent(ctx context.Context, def schema.Definition, rows []RawRow, emit func(RowOutcome)) error {
	n := len(rows)
	outcomes := make([]RowOutcome, n)
	done := make([]chan struct{}, n)
	for i := range done {
		done[i] = make(chan struct{})
	}

	var cancelFrom atomic.Int64
	cancelFrom.Store(int64(n) + 1)

	sem := make(chan struct{}, e.width)
	abort := func(i int) {
		cancelFrom.Store(int64(i))
		for j := i; j < n; j++ {
			close(done[j])
		}
	}
	go func() {
		for i := range rows {
			// Checked before waiting on the semaphore so a cancelled
			// context never dispatches another row even when slots are
			// free.
			if ctx.Err() != nil {
				abort(i)
				return
			}
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				abort(i)
				return
			}
			go func(i int) {
				defer func() {
					<-sem
					close(done[i])
				}()
				outcomes[i] = e.processRow(ctx, def, rows[i])
			}(i)
		}
	}()

	for i := 0; i < n; i++ {
		<-done[i]
		if int64(i) >= cancelFrom.Load() {
			return ctx.Err()
		}
		emit(outcomes[i])
	}
	return nil
}

// processRow maps one row and, if it maps cleanly, commits it. Every
// failure kind collapses to exactly one outcome for the row.
func (e *Executor) processRow(ctx context.Context, def schema.Definition, row RawRow) RowOutcome {
	rec, err := MapRow(row, def)
	if err != nil {
		return RowOutcome{
			Kind:      OutcomeValidationFailure,
			RowNumber: row.Number,
			Message:   err.Error(),
		}
	}

	id, err := e.creator.Create(ctx, rec)
	if err != nil {
		return RowOutcome{
			Kind:      OutcomePersistenceFailure,
			RowNumber: row.Number,
			Message:   fmt.Sprintf("Row %d: %v", row.Number, err),
		}
	}

	return RowOutcome{
		Kind:      OutcomeSuccess,
		RowNumber: row.Number,
		RecordID:  id,
	}
}

// processRowDry maps one row without committing it. Used by validate-only
// preview runs.
func (e *Executor) processRowDry(def schema.Definition, row RawRow) RowOutcome {
	if _, err := MapRow(row, def); err != nil {
		return RowOutcome{
			Kind:      OutcomeValidationFailure,
			RowNumber: row.Number,
			Message:   err.Error(),
		}
	}
	return RowOutcome{Kind: OutcomeSuccess, RowNumber: row.Number}
}
