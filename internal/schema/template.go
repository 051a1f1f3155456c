package schema

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/salesflow/salesflow/internal/crm"
)

// Template renders an example CSV file for an entity type: the canonical
// header row followed by the definition's fixed illustrative records. It
// consults no live data; its only job is to teach correct column naming.
func Template(entity crm.EntityType) (string, error) {
	def, ok := Get(entity)
	if !ok {
		return "", fmt.Errorf("unknown entity type %q", entity)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(def.Columns()); err != nil {
		return "", fmt.Errorf("write template header: %w", err)
	}
	for _, row := range def.ExampleRows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write template row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// TemplateFileName returns the download filename for an entity template.
func TemplateFileName(entity crm.EntityType) string {
	return fmt.Sprintf("%s_template.csv", entity)
}
