package models

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedEvent means the notification payload is structurally
	// unusable: the nested customer object is missing entirely.
	ErrMalformedEvent = errors.New("malformed order event")
)

// APIError is a non-2xx response from the directory or record-creation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// IdentityCreationError is a fatal failure of the initial create-customer
// call, before any conflict classification applied.
type IdentityCreationError struct {
	Err error
}

func (e *IdentityCreationError) Error() string {
	return fmt.Sprintf("identity creation failed: %v", e.Err)
}

func (e *IdentityCreationError) Unwrap() error { return e.Err }

// IdentityAssociationError is a fatal failure to associate a resolved
// identity with the service desk. The association call is what grants portal
// access, so it aborts the whole run.
type IdentityAssociationError struct {
	AccountID string
	Err       error
}

func (e *IdentityAssociationError) Error() string {
	return fmt.Sprintf("identity association failed for account %s: %v", e.AccountID, e.Err)
}

func (e *IdentityAssociationError) Unwrap() error { return e.Err }

// MissingRoutingKeyError means the selected provisioning variant requires a
// routing key that is neither present in the event metadata nor configured.
type MissingRoutingKeyError struct {
	Key string
}

func (e *MissingRoutingKeyError) Error() string {
	return fmt.Sprintf("missing routing key: %s", e.Key)
}
