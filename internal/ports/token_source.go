package ports

import "context"

// TokenSource yields a currently valid bearer token, or "" when the
// session is unauthenticated. Callers must obtain the token immediately
// before issuing a request and never hold it across a suspension point.
type TokenSource interface {
	GetValidToken(ctx context.Context) string
}
