// Package search wraps the live part-search collaborator. Every call
// carries its own timeout independent of the caller's deadline; discovery
// treats any error, timeout, or empty result as "no live data".
package search

import "context"

// Snippet is one unstructured text result from the search service.
type Snippet struct {
	Title string
	URL   string
	Text  string
}

// Searcher runs a query against the live part-search service.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Snippet, error)
}

// SearchFunc adapts a function to the Searcher interface, mainly for tests.
type SearchFunc func(ctx context.Context, query string) ([]Snippet, error)

// Search implements Searcher.
func (f SearchFunc) Search(ctx context.Context, query string) ([]Snippet, error) {
	return f(ctx, query)
}
