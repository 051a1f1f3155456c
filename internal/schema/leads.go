package schema

import "github.com/salesflow/salesflow/internal/crm"

// LeadStatuses is the lead pipeline stage domain.
var LeadStatuses = []string{
	"new", "contacted", "qualified", "proposal", "negotiation", "closed-won", "closed-lost",
}

func init() {
	Register(Definition{
		Type:  crm.EntityLeads,
		Label: "Leads",
		FieldSpecs: []FieldSpec{
			{Name: "name", Kind: KindText, Required: true},
			{Name: "email", Kind: KindText, Required: true},
			{Name: "phone", Kind: KindText},
			{Name: "company", Kind: KindText},
			{Name: "source", Kind: KindText, Default: "Import"},
			{Name: "status", Kind: KindEnum, Default: "new", EnumValues: LeadStatuses},
			{Name: "value", Kind: KindNumber},
			{Name: "probability", Kind: KindNumber},
			{Name: "notes", Kind: KindText},
		},
		Build: func(f Fields) crm.Record {
			return crm.Lead{
				Name:        f.Str("name"),
				Email:       f.Str("email"),
				Phone:       f.Str("phone"),
				Company:     f.Str("company"),
				Source:      f.Str("source"),
				Status:      f.Str("status"),
				Value:       f.Num("value"),
				Probability: f.Num("probability"),
				Notes:       f.Str("notes"),
			}
		},
		ExampleRows: [][]string{
			{"John Smith", "john@example.com", "555-0123", "TechCorp", "Website", "new", "25000", "75", "Interested in our premium package"},
			{"Sarah Johnson", "sarah@company.com", "555-0124", "ABC Inc", "Referral", "qualified", "15000", "60", "Follow up next week"},
		},
	})
}
