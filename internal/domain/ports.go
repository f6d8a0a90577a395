package domain

import "context"

// FeedClient fetches the raw advertising feed from the configured source.
type FeedClient interface {
	FetchFeed(ctx context.Context) ([]RawRecord, error)
}

// Identity is the session collaborator's view of the current user. The
// dashboard only relies on these two fields; a nil identity means the
// request is anonymous.
type Identity struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// SessionProvider resolves the identity attached to a request, if any.
type SessionProvider interface {
	Current(ctx context.Context) *Identity
}
