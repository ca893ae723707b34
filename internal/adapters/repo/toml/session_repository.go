package toml

import (
	"context"
	"sync"

	"github.com/spf13/viper"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

const sessionFileName = "session.toml"

type SessionRepository struct {
	path string
	mu   *sync.RWMutex
}

var _ ports.SessionRepository = (*SessionRepository)(nil)

type sessionFileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

type sessionSchema struct {
	SubjectID      string `toml:"subject_id"`
	Username       string `toml:"username"`
	TokenSecretRef string `toml:"token_secret_ref"`
}

func NewSessionRepository(cfg *viper.Viper) (*SessionRepository, error) {
	path, err := resolveStatePath(cfg, sessionFileName)
	if err != nil {
		return nil, err
	}

	return &SessionRepository{path: path, mu: lockForPath(path)}, nil
}

func (r *SessionRepository) Load(ctx context.Context) (ports.SessionRecord, error) {
	if err := ctx.Err(); err != nil {
		return ports.SessionRecord{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var file sessionFileSchema
	found, err := readTOMLFile(r.path, &file)
	if err != nil {
		return ports.SessionRecord{}, err
	}
	if !found || file.Session.TokenSecretRef == "" {
		return ports.SessionRecord{}, ports.ErrNoStoredSession
	}

	return ports.SessionRecord{
		SubjectID:      file.Session.SubjectID,
		Username:       file.Session.Username,
		TokenSecretRef: file.Session.TokenSecretRef,
	}, nil
}

func (r *SessionRepository) Save(ctx context.Context, record ports.SessionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file := sessionFileSchema{
		Version: 1,
		Session: sessionSchema{
			SubjectID:      record.SubjectID,
			Username:       record.Username,
			TokenSecretRef: record.TokenSecretRef,
		},
	}
	return writeTOMLFile(r.path, file)
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return removeStateFile(r.path)
}
