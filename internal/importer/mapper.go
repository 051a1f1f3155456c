package importer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/salesflow/salesflow/internal/crm"
	"github.com/salesflow/salesflow/internal/schema"
)

// ValidationFailure is a row-local mapping failure. It never aborts the
// job; the row is recorded and processing continues.
type ValidationFailure struct {
	RowNumber int
	Field     string
	Message   string
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("Row %d: %s", e.RowNumber, e.Message)
}

// MapRow applies one raw row through the entity definition's field specs
// and builds a typed record ready to persist, or returns a
// *ValidationFailure for that row alone.
//
// Field lookup is case-sensitive against the header exactly as uploaded.
// Required fields that are absent or empty fail the row. Optional fields
// fall back to the declared default, or the kind's zero value when no
// default is declared; this includes optional numeric and enum values that
// cannot be coerced, which are treated exactly like absent input.
func MapRow(row RawRow, def schema.Definition) (crm.Record, error) {
	fields := make(schema.Fields, len(def.FieldSpecs))

	for _, spec := range def.FieldSpecs {
		raw := strings.TrimSpace(row.Get(spec.Name))

		if raw == "" {
			if spec.Required {
				return nil, &ValidationFailure{
					RowNumber: row.Number,
					Field:     spec.Name,
					Message:   fmt.Sprintf("missing required field %q", spec.Name),
				}
			}
			fields[spec.Name] = defaultValue(spec)
			continue
		}

		switch spec.Kind {
		case schema.KindNumber:
			n, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				if spec.Required {
					return nil, &ValidationFailure{
						RowNumber: row.Number,
						Field:     spec.Name,
						Message:   fmt.Sprintf("invalid number for %q: %q", spec.Name, raw),
					}
				}
				fields[spec.Name] = defaultValue(spec)
				continue
			}
			fields[spec.Name] = n

		case schema.KindEnum:
			match, ok := enumMatch(raw, spec.EnumValues)
			if !ok {
				if spec.Required {
					return nil, &ValidationFailure{
						RowNumber: row.Number,
						Field:     spec.Name,
						Message:   fmt.Sprintf("invalid value for %q: %q (must be one of: %s)", spec.Name, raw, strings.Join(spec.EnumValues, ", ")),
					}
				}
				fields[spec.Name] = defaultValue(spec)
				continue
			}
			fields[spec.Name] = match

		default:
			// Dates and text pass through as trimmed text.
			fields[spec.Name] = raw
		}
	}

	return def.Build(fields), nil
}

// defaultValue resolves a spec's declared default, or the kind's zero
// value, into the coerced representation the record builder expects.
func defaultValue(spec schema.FieldSpec) any {
	if spec.Kind == schema.KindNumber {
		if spec.Default == "" {
			return float64(0)
		}
		n, err := strconv.ParseFloat(spec.Default, 64)
		if err != nil {
			return float64(0)
		}
		return n
	}
	return spec.Default
}

// enumMatch checks case-insensitive membership and returns the declared
// casing of the matched value.
func enumMatch(raw string, values []string) (string, bool) {
	for _, v := range values {
		if strings.EqualFold(raw, v) {
			return v, true
		}
	}
	return "", false
}
