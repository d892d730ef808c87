package identity

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/deskhook/deskhook/internal/directory"
	"github.com/deskhook/deskhook/internal/models"
	"go.uber.org/zap"
)

// Directory is the subset of the customer directory the resolver needs.
type Directory interface {
	// CreateCustomer registers the customer and returns its account id,
	// which may be empty even on success
	CreateCustomer(ctx context.Context, email, displayName string) (string, error)
	// SearchCustomerByEmail looks the customer up by exact email match
	SearchCustomerByEmail(ctx context.Context, email string) ([]models.DirectoryCustomer, error)
	// AddCustomerToServiceDesk grants the customer portal access
	AddCustomerToServiceDesk(ctx context.Context, serviceDeskID, accountID string) error
}

const (
	DefaultSearchAttempts = 3
	DefaultSearchInterval = 1500 * time.Millisecond
)

// errNotIndexed marks a search attempt that found no match yet. The
// directory's search index lags its write path, so this is retryable.
var errNotIndexed = errors.New("customer not yet searchable")

// Resolver establishes a directory identity for a customer: create first,
// fall back to a bounded search when the customer already exists, then
// associate the identity with the service desk.
type Resolver struct {
	dir      Directory
	attempts uint64
	interval time.Duration
	log      *zap.Logger
}

// NewResolver creates a resolver with the given search retry budget.
// Non-positive attempts or interval fall back to the defaults.
func NewResolver(dir Directory, attempts int, interval time.Duration, log *zap.Logger) *Resolver {
	if attempts <= 0 {
		attempts = DefaultSearchAttempts
	}
	if interval <= 0 {
		interval = DefaultSearchInterval
	}
	return &Resolver{
		dir:      dir,
		attempts: uint64(attempts),
		interval: interval,
		log:      log,
	}
}

// Resolve guarantees that on return the customer either has a known account
// id associated with the service desk, or the caller is told resolution
// failed (empty account id, nil error) and must fall back to email
// attribution. IsNew is true only when the creation call itself returned an
// account id.
func (r *Resolver) Resolve(ctx context.Context, email, displayName, serviceDeskID string) (models.IdentityResolution, error) {
	res := models.IdentityResolution{}

	accountID, err := r.dir.CreateCustomer(ctx, email, displayName)
	switch {
	case err == nil && accountID != "":
		res.AccountID = accountID
		res.IsNew = true
	case err == nil:
		// created but no id in the response, find it via search
		res.AccountID = r.search(ctx, email)
	default:
		if directory.ClassifyCreateCustomer(err) != directory.OutcomeConflict {
			return res, &models.IdentityCreationError{Err: err}
		}
		r.log.Debug("customer already exists in directory", zap.String("email", email))
		res.AccountID = r.search(ctx, email)
	}

	if res.AccountID == "" {
		// unresolved within the retry budget, degrade to email attribution
		return res, nil
	}

	if err := r.dir.AddCustomerToServiceDesk(ctx, serviceDeskID, res.AccountID); err != nil {
		if directory.ClassifyAssociation(err) != directory.OutcomeConflict {
			return res, &models.IdentityAssociationError{AccountID: res.AccountID, Err: err}
		}
		r.log.Debug("customer already belongs to service desk", zap.String("account_id", res.AccountID))
	}

	return res, nil
}

// search polls the directory for the customer, spacing attempts by the
// configured constant interval with no delay after the last one. Exhausting
// the budget is not an error; the caller degrades instead.
func (r *Resolver) search(ctx context.Context, email string) string {
	var accountID string

	lookup := func() error {
		customers, err := r.dir.SearchCustomerByEmail(ctx, email)
		if err != nil {
			if directory.ClassifyCustomerSearch(err) != directory.OutcomeTransient {
				return backoff.Permanent(err)
			}
			return err
		}
		if len(customers) == 0 {
			return errNotIndexed
		}
		accountID = customers[0].AccountID
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(r.interval), r.attempts-1), ctx)

	if err := backoff.Retry(lookup, policy); err != nil {
		r.log.Warn("customer not found within search retry budget",
			zap.String("email", email), zap.Error(err))
		return ""
	}
	return accountID
}
