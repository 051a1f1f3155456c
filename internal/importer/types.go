// Package importer implements the bulk import pipeline: parse delimited
// text into rows, map and validate each row against the entity's field
// schema, commit mapped records through the persistence collaborator, and
// fold per-row outcomes into a partial-success summary.
package importer

import "strings"

// RawRow is one data row of the uploaded file: header-keyed string values
// plus the row's position in the file. Immutable once produced by the
// parser.
type RawRow struct {
	// Number is the 1-based file row as a user would see it in a
	// spreadsheet: data index + 2, accounting for the header line.
	Number  int
	Columns []string // Header names in file order
	Values  map[string]string
}

// Get returns the raw cell value for a column, "" when the column does not
// exist. Lookup is case-sensitive against the header exactly as it
// appeared in the file.
func (r RawRow) Get(column string) string {
	return r.Values[column]
}

// OutcomeKind classifies the terminal result of one row.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeValidationFailure
	OutcomePersistenceFailure
)

// RowOutcome is the terminal classification of one row. Exactly one is
// produced per data row, in file order.
type RowOutcome struct {
	Kind      OutcomeKind
	RowNumber int
	RecordID  string // Server-assigned id, set on success
	Message   string // Human-readable error, set on failure
}

// Result is the externally visible import summary.
// Invariant: Success + len(Errors) == Total when parsing succeeded; when
// parsing itself failed, Total == 0 and Errors holds exactly the parse
// failure message.
type Result struct {
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
	Total   int      `json:"total"`
}

// foldOutcomes derives a Result from an ordered outcome sequence.
func foldOutcomes(outcomes []RowOutcome) *Result {
	res := &Result{Errors: []string{}, Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Kind == OutcomeSuccess {
			res.Success++
		} else {
			res.Errors = append(res.Errors, o.Message)
		}
	}
	return res
}

// State is the lifecycle stage of an import job.
type State string

const (
	StateIdle          State = "idle"
	StateParsing       State = "parsing"
	StateRowProcessing State = "row_processing"
	StateFailed        State = "failed"
	StateCompleted     State = "completed"
)

// ProgressFunc observes job progress as a 0-100 percentage. Calls are
// monotonic and made from the goroutine running the job.
type ProgressFunc func(percent int)

// isBlankLine reports whether a parsed record is a whitespace-only line.
// encoding/csv already drops truly empty lines; a line of spaces survives
// as a single blank cell.
func isBlankLine(cells []string) bool {
	return len(cells) == 1 && strings.TrimSpace(cells[0]) == ""
}
