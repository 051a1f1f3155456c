package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salesflow/salesflow/internal/crm"
	"github.com/salesflow/salesflow/internal/logging"
	"github.com/salesflow/salesflow/internal/schema"
)

// Job is one run of the pipeline over one file and one entity type. It is
// transient: it exists only in memory and is discarded when the caller is
// done with the result. The job exclusively owns its row and outcome
// sequences.
type Job struct {
	ID     string
	Entity crm.EntityType
	Source []byte

	state      State
	rows       []RawRow
	outcomes   []RowOutcome
	progress   int
	onProgress ProgressFunc
}

// JobOption configures a Job.
type JobOption func(*Job)

// WithProgress registers a progress observer. It is invoked from the
// goroutine running the job, with monotonically increasing percentages.
func WithProgress(fn ProgressFunc) JobOption {
	return func(j *Job) { j.onProgress = fn }
}

// NewJob creates an idle job for one source file and entity type.
// The source is assumed UTF-8; invalid sequences are sanitized before
// parsing.
func NewJob(entity crm.EntityType, source []byte, opts ...JobOption) *Job {
	j := &Job{
		ID:     uuid.NewString(),
		Entity: entity,
		Source: source,
		state:  StateIdle,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// State returns the job's lifecycle stage.
func (j *Job) State() State { return j.state }

// Progress returns the last reported percentage.
func (j *Job) Progress() int { return j.progress }

// Outcomes returns the per-row outcomes recorded so far, in row order.
func (j *Job) Outcomes() []RowOutcome { return j.outcomes }

func (j *Job) setProgress(p int) {
	j.progress = p
	if j.onProgress != nil {
		j.onProgress(p)
	}
}

// Pipeline runs import jobs against one persistence collaborator.
type Pipeline struct {
	creator crm.RecordCreator
	width   int
}

// NewPipeline creates a pipeline committing through creator. Width is the
// Commit Executor's concurrency window; 1 means strictly sequential.
func NewPipeline(creator crm.RecordCreator, width int) *Pipeline {
	if width < 1 {
		width = 1
	}
	return &Pipeline{creator: creator, width: width}
}

// Run executes the job to completion: Parsing, then per-row processing,
// then the folded summary. A parse failure is terminal and reported inside
// the Result, not as a Go error. The only error return is context
// cancellation between rows, in which case no summary is produced.
//
// Progress: 10% on parse completion, 80% spread evenly across rows, the
// final 10% on completion.
func (p *Pipeline) Run(ctx context.Context, job *Job) (*Result, error) {
	return p.run(ctx, job, false)
}

// Validate runs parse and map for every row without committing anything.
// The Result has the same shape as a real run; successes are rows that
// would have been submitted.
func (p *Pipeline) Validate(ctx context.Context, job *Job) (*Result, error) {
	return p.run(ctx, job, true)
}

func (p *Pipeline) run(ctx context.Context, job *Job, dryRun bool) (*Result, error) {
	def, ok := schema.Get(job.Entity)
	if !ok {
		return nil, fmt.Errorf("unknown entity type %q", job.Entity)
	}

	logger := logging.FromContext(ctx).With("job_id", job.ID, "entity", job.Entity)

	job.state = StateParsing
	rows, err := ParseRows(string(SanitizeUTF8(job.Source)))
	if err != nil {
		job.state = StateFailed
		logger.Warn("import parse failed", "error", err)
		return &Result{Errors: []string{err.Error()}}, nil
	}

	job.rows = rows
	job.setProgress(10)
	job.state = StateRowProcessing

	n := len(rows)
	emit := func(o RowOutcome) {
		job.outcomes = append(job.outcomes, o)
		job.setProgress(10 + len(job.outcomes)*80/n)
	}

	if n > 0 {
		exec := NewExecutor(p.creator, p.width)
		if dryRun {
			err = p.runDry(ctx, exec, def, rows, emit)
		} else {
			err = exec.Run(ctx, def, rows, emit)
		}
		if err != nil {
			job.state = StateFailed
			logger.Warn("import cancelled", "rows_done", len(job.outcomes), "error", err)
			return nil, err
		}
	}

	job.setProgress(100)
	job.state = StateCompleted

	result := foldOutcomes(job.outcomes)
	logger.Info("import completed",
		"dry_run", dryRun,
		"total", result.Total,
		"success", result.Success,
		"failed", len(result.Errors),
	)
	return result, nil
}

func (p *Pipeline) runDry(ctx context.Context, exec *Executor, def schema.Definition, rows []RawRow, emit func(RowOutcome)) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}
		emit(exec.processRowDry(def, row))
	}
	return nil
}
