// Package crm defines the record types accepted by the persistence
// collaborator and the port the import pipeline commits records through.
//
// Two implementations of RecordCreator exist: the hosted data-service
// client in this package and the PostgreSQL store in internal/store.
package crm

import (
	"context"
	"fmt"
)

// EntityType identifies one of the importable record kinds.
type EntityType string

const (
	EntityLeads     EntityType = "leads"
	EntityCustomers EntityType = "customers"
	EntityContracts EntityType = "contracts"
)

// ParseEntityType validates a string entity type from user input.
func ParseEntityType(s string) (EntityType, error) {
	switch EntityType(s) {
	case EntityLeads, EntityCustomers, EntityContracts:
		return EntityType(s), nil
	}
	return "", fmt.Errorf("unknown entity type %q", s)
}

// Record is any value the persistence collaborator can create.
// Server-assigned fields (id, created/updated timestamps) are never set
// client-side.
type Record interface {
	Entity() EntityType
}

// Lead is a sales lead record.
type Lead struct {
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	Company     string  `json:"company,omitempty"`
	Source      string  `json:"source"`
	Status      string  `json:"status"`
	Value       float64 `json:"value,omitempty"`
	Probability float64 `json:"probability,omitempty"`
	Notes       string  `json:"notes,omitempty"`
}

func (Lead) Entity() EntityType { return EntityLeads }

// Customer is an established customer record.
type Customer struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone,omitempty"`
	Company    string  `json:"company,omitempty"`
	Address    string  `json:"address,omitempty"`
	Industry   string  `json:"industry,omitempty"`
	TotalValue float64 `json:"total_value"`
	Status     string  `json:"status"`
	Notes      string  `json:"notes,omitempty"`
}

func (Customer) Entity() EntityType { return EntityCustomers }

// Contract is a contract record. New contracts always start in draft.
type Contract struct {
	Title         string  `json:"title"`
	CustomerName  string  `json:"customer_name"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	Value         float64 `json:"value"`
	Content       string  `json:"content,omitempty"`
	Status        string  `json:"status"`
	ExpiryDate    string  `json:"expiry_date,omitempty"`
}

func (Contract) Entity() EntityType { return EntityContracts }

// RecordCreator is the persistence collaborator boundary.
// Create persists one record and returns its server-assigned id.
// Failures are either a *ValidationError (record rejected by the remote
// schema) or a *NetworkError (transport or service failure).
type RecordCreator interface {
	Create(ctx context.Context, rec Record) (string, error)
}
