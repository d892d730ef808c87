package models

// DirectoryCustomer is a single match returned by a directory search.
type DirectoryCustomer struct {
	AccountID string
}

// IdentityResolution is the outcome of the create-or-find pass over the
// directory. An empty AccountID means resolution could not complete within
// the retry budget. IsNew is set only when the initial creation call itself
// returned an account id.
type IdentityResolution struct {
	AccountID string
	IsNew     bool
}

// ReporterRef attributes a created record to a customer, either by resolved
// account id or by raw email. Exactly one field is set.
type ReporterRef struct {
	AccountID string
	Email     string
}

// ReporterFor builds the reporter reference for a run, preferring the
// resolved account id over email attribution.
func ReporterFor(res IdentityResolution, email string) ReporterRef {
	if res.AccountID != "" {
		return ReporterRef{AccountID: res.AccountID}
	}
	return ReporterRef{Email: email}
}
