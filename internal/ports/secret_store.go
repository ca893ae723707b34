package ports

import "context"

// SecretStore holds credential material referenced by "provider://path"
// keys, keeping token sets out of plain state files.
type SecretStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
