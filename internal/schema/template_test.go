package schema

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/salesflow/salesflow/internal/crm"
)

func TestTemplateHeaders(t *testing.T) {
	tests := []struct {
		entity     crm.EntityType
		wantHeader string
	}{
		{crm.EntityLeads, "name,email,phone,company,source,status,value,probability,notes"},
		{crm.EntityCustomers, "name,email,phone,company,address,industry,total_value,status,notes"},
		{crm.EntityContracts, "title,customer_name,customer_email,value,content,expiry_date"},
	}

	for _, tt := range tests {
		t.Run(string(tt.entity), func(t *testing.T) {
			body, err := Template(tt.entity)
			if err != nil {
				t.Fatalf("Template() error = %v", err)
			}
			lines := strings.Split(body, "\n")
			if lines[0] != tt.wantHeader {
				t.Errorf("header = %q, want %q", lines[0], tt.wantHeader)
			}
		})
	}
}

func TestTemplateBodyParsesAgainstOwnHeader(t *testing.T) {
	for _, def := range All() {
		t.Run(string(def.Type), func(t *testing.T) {
			body, err := Template(def.Type)
			if err != nil {
				t.Fatalf("Template() error = %v", err)
			}

			records, err := csv.NewReader(strings.NewReader(body)).ReadAll()
			if err != nil {
				t.Fatalf("template is not valid CSV: %v", err)
			}
			if len(records) != len(def.ExampleRows)+1 {
				t.Fatalf("template has %d records, want header + %d examples", len(records), len(def.ExampleRows))
			}
			for i, rec := range records[1:] {
				if len(rec) != len(def.FieldSpecs) {
					t.Errorf("example row %d has %d cells, want %d", i, len(rec), len(def.FieldSpecs))
				}
			}
		})
	}
}

func TestTemplateUnknownEntity(t *testing.T) {
	if _, err := Template(crm.EntityType("invoices")); err == nil {
		t.Error("Template(invoices) error = nil, want unknown entity error")
	}
}

func TestTemplateFileName(t *testing.T) {
	if got := TemplateFileName(crm.EntityLeads); got != "leads_template.csv" {
		t.Errorf("TemplateFileName() = %q, want %q", got, "leads_template.csv")
	}
}
