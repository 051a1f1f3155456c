package schema

import "github.com/salesflow/salesflow/internal/crm"

// ContractDraftStatus is the status every imported contract starts in.
// Later stages (sent, signed, expired, cancelled) are reached through the
// contract workflow, never through import.
const ContractDraftStatus = "draft"

func init() {
	Register(Definition{
		Type:  crm.EntityContracts,
		Label: "Contracts",
		FieldSpecs: []FieldSpec{
			{Name: "title", Kind: KindText, Required: true},
			{Name: "customer_name", Kind: KindText, Required: true},
			{Name: "customer_email", Kind: KindText},
			{Name: "value", Kind: KindNumber, Required: true},
			{Name: "content", Kind: KindText},
			{Name: "expiry_date", Kind: KindDate},
		},
		Build: func(f Fields) crm.Record {
			return crm.Contract{
				Title:         f.Str("title"),
				CustomerName:  f.Str("customer_name"),
				CustomerEmail: f.Str("customer_email"),
				Value:         f.Num("value"),
				Content:       f.Str("content"),
				Status:        ContractDraftStatus,
				ExpiryDate:    f.Str("expiry_date"),
			}
		},
		ExampleRows: [][]string{
			{"Service Agreement", "John Smith", "john@example.com", "25000", "This agreement covers...", "2024-12-31"},
			{"Software License", "Sarah Johnson", "sarah@company.com", "15000", "Software licensing terms...", "2024-11-30"},
		},
	})
}
