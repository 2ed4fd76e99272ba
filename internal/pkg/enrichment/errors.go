package enrichment

import "errors"

// ErrNoMatch means the provider has no profile for the query. Callers still
// count the lookup against the monthly quota.
var ErrNoMatch = errors.New("no enrichment match found")
