package ports

import (
	"context"
	"errors"
)

var ErrNoStoredSession = errors.New("no stored session")

// SessionRecord is the locally persisted trace of a login: who the tokens
// belong to and where the token set itself is stored. The tokens live in
// the secret store, never in the record.
type SessionRecord struct {
	SubjectID      string
	Username       string
	TokenSecretRef string
}

type SessionRepository interface {
	Load(ctx context.Context) (SessionRecord, error)
	Save(ctx context.Context, record SessionRecord) error
	Clear(ctx context.Context) error
}
