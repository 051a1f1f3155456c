// Package store implements the record persistence port on PostgreSQL for
// self-hosted deployments. The hosted data-service client in internal/crm
// is the default collaborator; this store is selected with
// STORE_BACKEND=postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/salesflow/salesflow/internal/crm"
)

// DB is the subset of pgx operations the store needs.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store is a crm.RecordCreator backed by PostgreSQL.
type Store struct {
	db DB
}

// New creates a Store on the given connection pool or transaction.
func New(db DB) *Store {
	return &Store{db: db}
}

const (
	insertLead = `
		INSERT INTO leads (name, email, phone, company, source, status, value, probability, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	insertCustomer = `
		INSERT INTO customers (name, email, phone, company, address, industry, total_value, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`

	insertContract = `
		INSERT INTO contracts (title, customer_name, customer_email, value, content, status, expiry_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
)

// Create inserts one record and returns its database-assigned id.
// Constraint and data errors map to *crm.ValidationError; everything else
// maps to *crm.NetworkError, mirroring the hosted client's taxonomy.
func (s *Store) Create(ctx context.Context, rec crm.Record) (string, error) {
	var (
		query string
		args  []any
	)

	switch r := rec.(type) {
	case crm.Lead:
		query = insertLead
		args = []any{r.Name, r.Email, pgText(r.Phone), pgText(r.Company), r.Source, r.Status, r.Value, r.Probability, pgText(r.Notes)}
	case crm.Customer:
		query = insertCustomer
		args = []any{r.Name, r.Email, pgText(r.Phone), pgText(r.Company), pgText(r.Address), pgText(r.Industry), r.TotalValue, r.Status, pgText(r.Notes)}
	case crm.Contract:
		query = insertContract
		args = []any{r.Title, r.CustomerName, pgText(r.CustomerEmail), r.Value, pgText(r.Content), r.Status, pgDate(r.ExpiryDate)}
	default:
		return "", &crm.NetworkError{Entity: rec.Entity(), Err: fmt.Errorf("unsupported record type %T", rec)}
	}

	var id pgtype.UUID
	if err := s.db.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return "", classify(rec.Entity(), err)
	}
	if !id.Valid {
		return "", &crm.NetworkError{Entity: rec.Entity(), Err: fmt.Errorf("insert returned no id")}
	}
	return uuid.UUID(id.Bytes).String(), nil
}

// classify maps pgx errors onto the persistence boundary's taxonomy.
// SQLSTATE classes 22 (data exception) and 23 (integrity violation) mean
// the record itself was rejected; anything else is a service failure.
func classify(entity crm.EntityType, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "22") || strings.HasPrefix(pgErr.Code, "23") {
			return &crm.ValidationError{Entity: entity, Message: pgErr.Message}
		}
	}
	return &crm.NetworkError{Entity: entity, Err: err}
}
