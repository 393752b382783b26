// File: database/repository/session/interface.go
package sessionRepo

import "context"

// Tier is one key-value layer of persisted client state. The session-scoped
// tier lives as long as the client context; the long-lived tier survives
// restarts of the shell.
type Tier interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
	Clear(ctx context.Context) error
}
