package ports

import "context"

// Backend performs one JSON request against the external REST server and
// returns the decoded body (nil for empty responses). An empty token sends
// no Authorization header.
type Backend interface {
	Do(ctx context.Context, method, path, token string, body any) (any, error)
}
