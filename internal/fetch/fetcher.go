package fetch

import "context"

// Fetcher retrieves raw data from one external source and normalizes it
// into human-readable lines. A fetcher returns an error only for a failure
// reaching its backing system; an empty result is a valid empty slice.
// Callers convert errors into explanatory placeholder lines so assembly
// never blocks on a partial outage.
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) ([]string, error)
}
