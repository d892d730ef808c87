package directory

import (
	"errors"
	"net/http"
	"strings"

	"github.com/deskhook/deskhook/internal/models"
)

// Outcome tags an error from a directory call for the caller's failure
// policy. Conflicts are the idempotent "already exists" conditions a rerun
// or a concurrent run can legitimately produce.
type Outcome int

const (
	OutcomeFatal Outcome = iota
	OutcomeConflict
	OutcomeTransient
)

// ClassifyCreateCustomer tags an error from CreateCustomer. An existing
// customer with the same email is a conflict, not a failure.
func ClassifyCreateCustomer(err error) Outcome {
	if isConflict(err, "already exists") {
		return OutcomeConflict
	}
	return OutcomeFatal
}

// ClassifyCustomerSearch tags an error from SearchCustomerByEmail. Search
// failures are indistinguishable from index lag, so they stay retryable
// within the caller's attempt budget.
func ClassifyCustomerSearch(err error) Outcome {
	return OutcomeTransient
}

// ClassifyAssociation tags an error from AddCustomerToServiceDesk. A
// customer who is already a member of the desk is a conflict.
func ClassifyAssociation(err error) Outcome {
	if isConflict(err, "already exists", "already belongs to") {
		return OutcomeConflict
	}
	return OutcomeFatal
}

// isConflict recognizes the idempotent-conflict signal: HTTP 409, or an
// error message containing one of the known phrases. The substring matching
// is brittle by nature, which is why it lives only here.
func isConflict(err error, phrases ...string) bool {
	var apiErr *models.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.StatusCode == http.StatusConflict {
		return true
	}
	msg := strings.ToLower(apiErr.Message)
	for _, phrase := range phrases {
		if strings.Contains(msg, phrase) {
			return true
		}
	}
	return false
}
