package search

import "time"

// refreshMargin refreshes a token slightly before its actual expiry so an
// in-flight search never races the supplier's clock.
const refreshMargin = 30 * time.Second

// Token is the supplier API OAuth state. It is held explicitly by the
// client that needs it rather than in module-level mutable state, and
// validity is decided by the pure NeedsRefresh function.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// NeedsRefresh reports whether the token is absent, expired, or within
// the refresh margin of expiring at the given instant.
func (t Token) NeedsRefresh(now time.Time) bool {
	if t.AccessToken == "" {
		return true
	}
	return !now.Add(refreshMargin).Before(t.ExpiresAt)
}
