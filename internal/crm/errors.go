package crm

import "fmt"

// ValidationError indicates the persistence service rejected a record
// against its own schema. Row-local: the import pipeline records it and
// keeps going.
type ValidationError struct {
	Entity  EntityType
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s record rejected: %s", e.Entity, e.Message)
}

// NetworkError indicates a transport or service failure while talking to
// the persistence service. Also row-local.
type NetworkError struct {
	Entity EntityType
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s create failed: %v", e.Entity, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }
