package schema

import "github.com/salesflow/salesflow/internal/crm"

// CustomerStatuses is the customer lifecycle domain.
var CustomerStatuses = []string{"active", "inactive", "prospect"}

func init() {
	Register(Definition{
		Type:  crm.EntityCustomers,
		Label: "Customers",
		FieldSpecs: []FieldSpec{
			{Name: "name", Kind: KindText, Required: true},
			{Name: "email", Kind: KindText, Required: true},
			{Name: "phone", Kind: KindText},
			{Name: "company", Kind: KindText},
			{Name: "address", Kind: KindText},
			{Name: "industry", Kind: KindText},
			{Name: "total_value", Kind: KindNumber, Default: "0"},
			{Name: "status", Kind: KindEnum, Default: "prospect", EnumValues: CustomerStatuses},
			{Name: "notes", Kind: KindText},
		},
		Build: func(f Fields) crm.Record {
			return crm.Customer{
				Name:       f.Str("name"),
				Email:      f.Str("email"),
				Phone:      f.Str("phone"),
				Company:    f.Str("company"),
				Address:    f.Str("address"),
				Industry:   f.Str("industry"),
				TotalValue: f.Num("total_value"),
				Status:     f.Str("status"),
				Notes:      f.Str("notes"),
			}
		},
		ExampleRows: [][]string{
			{"Mike Wilson", "mike@business.com", "555-0125", "Business Solutions", "123 Main St", "Technology", "50000", "active", "Long-term client"},
			{"Lisa Brown", "lisa@startup.com", "555-0126", "StartupCo", "456 Oak Ave", "Software", "25000", "prospect", "Potential for growth"},
		},
	})
}
