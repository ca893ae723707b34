package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

// renewalSkew is the remaining lifetime below which a token is renewed
// before being handed out.
const renewalSkew = 30 * time.Second

const tokenSecretRef = "keycloak://session/oauth_tokens"

// SessionManager owns the one authentication session of the process:
// silent initialization from persisted tokens, login completion, logout,
// and handing out a currently valid bearer token. No other component
// holds a token beyond the scope of a single outgoing request.
type SessionManager struct {
	repo    ports.SessionRepository
	secrets ports.SecretStore
	idp     ports.IdentityProvider
	clock   ports.Clock

	mu      sync.Mutex
	session domain.Session
	tokens  domain.TokenSet
}

var _ ports.TokenSource = (*SessionManager)(nil)

func NewSessionManager(repo ports.SessionRepository, secrets ports.SecretStore, idp ports.IdentityProvider, clock ports.Clock) *SessionManager {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionManager{
		repo:    repo,
		secrets: secrets,
		idp:     idp,
		clock:   clock,
	}
}

// Initialize attempts silent authentication from the persisted token set.
// It never fails: on any error the session is still marked initialized,
// just unauthenticated. Profile loading is best-effort and a failure
// there leaves Profile nil.
func (m *SessionManager) Initialize(ctx context.Context) domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session.Initialized {
		return m.session
	}
	m.session = domain.Session{Initialized: true}

	record, err := m.repo.Load(ctx)
	if err != nil {
		return m.session
	}

	raw, err := m.secrets.Get(ctx, record.TokenSecretRef)
	if err != nil {
		return m.session
	}
	tokens, err := decodeTokenSet(raw)
	if err != nil {
		return m.session
	}

	if tokens.ExpiringSoon(m.clock.Now(), renewalSkew) {
		refreshed, refreshErr := m.idp.Refresh(ctx, tokens.RefreshToken)
		if refreshErr != nil {
			return m.session
		}
		tokens = refreshed
	}

	if !m.adoptTokens(ctx, tokens) {
		return m.session
	}

	m.persistTokens(ctx, tokens)
	return m.session
}

// CompleteLogin installs a freshly exchanged token set, persisting it so
// the next process start authenticates silently.
func (m *SessionManager) CompleteLogin(ctx context.Context, tokens domain.TokenSet) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.session = domain.Session{Initialized: true}
	if !m.adoptTokens(ctx, tokens) {
		return m.session, fmt.Errorf("read token claims: token is not usable")
	}

	raw, err := encodeTokenSet(tokens)
	if err != nil {
		return m.session, err
	}
	if err := m.secrets.Put(ctx, tokenSecretRef, raw); err != nil {
		return m.session, fmt.Errorf("store token set: %w", err)
	}
	record := ports.SessionRecord{
		SubjectID:      m.session.SubjectID,
		Username:       m.session.Username,
		TokenSecretRef: tokenSecretRef,
	}
	if err := m.repo.Save(ctx, record); err != nil {
		return m.session, fmt.Errorf("save session record: %w", err)
	}

	return m.session, nil
}

// Logout revokes the session at the provider (best-effort) and clears all
// local session state. The session stays initialized.
func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.tokens.RefreshToken != "" {
		// Provider-side revocation failing must not keep the user
		// logged in locally.
		_ = m.idp.Logout(ctx, m.tokens.RefreshToken)
	}

	var errs []string
	if err := m.secrets.Delete(ctx, tokenSecretRef); err != nil {
		errs = append(errs, fmt.Sprintf("delete token set: %v", err))
	}
	if err := m.repo.Clear(ctx); err != nil {
		errs = append(errs, fmt.Sprintf("clear session record: %v", err))
	}

	m.tokens = domain.TokenSet{}
	m.session = domain.Session{Initialized: true}

	if len(errs) > 0 {
		return fmt.Errorf("logout: %s", strings.Join(errs, "; "))
	}
	return nil
}

// GetValidToken returns a bearer token for an outgoing request, renewing
// it first when its remaining lifetime is below the renewal skew. Renewal
// failure degrades to the last known token rather than failing the
// caller: a stale token is rejected downstream and surfaces there as an
// auth error, which is the documented contract. Returns "" when the
// session is unauthenticated.
func (m *SessionManager) GetValidToken(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.session.Authenticated {
		return ""
	}

	if m.tokens.ExpiringSoon(m.clock.Now(), renewalSkew) {
		refreshed, err := m.idp.Refresh(ctx, m.tokens.RefreshToken)
		if err == nil {
			m.tokens = refreshed
			m.persistTokens(ctx, refreshed)
		}
	}

	return m.tokens.AccessToken
}

func (m *SessionManager) HasRole(role string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session.HasRole(role)
}

// Session returns a snapshot of the current session state.
func (m *SessionManager) Session() domain.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.session
}

// adoptTokens derives the authenticated session state from a token set.
// Callers hold the lock.
func (m *SessionManager) adoptTokens(ctx context.Context, tokens domain.TokenSet) bool {
	claims, err := m.idp.Claims(tokens.AccessToken)
	if err != nil {
		return false
	}

	m.tokens = tokens
	m.session.Authenticated = true
	m.session.Roles = claims.Roles
	m.session.SubjectID = claims.Subject
	m.session.Username = claims.Username

	if profile, profileErr := m.idp.FetchProfile(ctx, tokens.AccessToken); profileErr == nil {
		m.session.Profile = &profile
	}

	return true
}

// persistTokens writes the current token set back to the secret store.
// Best-effort: a failed write means the next process start renews again.
func (m *SessionManager) persistTokens(ctx context.Context, tokens domain.TokenSet) {
	raw, err := encodeTokenSet(tokens)
	if err != nil {
		return
	}
	_ = m.secrets.Put(ctx, tokenSecretRef, raw)
}

type tokenSetSchema struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresAt    int64  `json:"expires_at,omitempty"`
}

func encodeTokenSet(tokens domain.TokenSet) (string, error) {
	schema := tokenSetSchema{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		IDToken:      tokens.IDToken,
		TokenType:    tokens.TokenType,
	}
	if !tokens.ExpiresAt.IsZero() {
		schema.ExpiresAt = tokens.ExpiresAt.Unix()
	}

	payload, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("encode token set: %w", err)
	}
	return string(payload), nil
}

func decodeTokenSet(raw string) (domain.TokenSet, error) {
	var schema tokenSetSchema
	if err := json.Unmarshal([]byte(raw), &schema); err != nil {
		return domain.TokenSet{}, fmt.Errorf("decode token set: %w", err)
	}
	if strings.TrimSpace(schema.AccessToken) == "" {
		return domain.TokenSet{}, fmt.Errorf("token set missing access_token")
	}

	tokens := domain.TokenSet{
		AccessToken:  schema.AccessToken,
		RefreshToken: schema.RefreshToken,
		IDToken:      schema.IDToken,
		TokenType:    schema.TokenType,
	}
	if schema.ExpiresAt > 0 {
		tokens.ExpiresAt = time.Unix(schema.ExpiresAt, 0)
	}
	return tokens, nil
}
