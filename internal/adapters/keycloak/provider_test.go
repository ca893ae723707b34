package keycloak

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProvider(t *testing.T, handler http.Handler) *Provider {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewProvider(server.URL, "gestion-produits_commandes", "frontend-app", server.Client(), zerolog.Nop())
}

func TestAuthorizationURL(t *testing.T) {
	provider := NewProvider("http://localhost:8080", "gestion-produits_commandes", "frontend-app", nil, zerolog.Nop())

	raw, err := provider.AuthorizationURL("http://localhost:1455/auth/callback", "state-1", "challenge-1")
	require.NoError(t, err)

	parsed, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/realms/gestion-produits_commandes/protocol/openid-connect/auth", parsed.Path)

	q := parsed.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "frontend-app", q.Get("client_id"))
	assert.Equal(t, "http://localhost:1455/auth/callback", q.Get("redirect_uri"))
	assert.Equal(t, "openid profile email", q.Get("scope"))
	assert.Equal(t, "state-1", q.Get("state"))
	assert.Equal(t, "challenge-1", q.Get("code_challenge"))
	assert.Equal(t, "S256", q.Get("code_challenge_method"))
}

func TestAuthorizationURLRequiresFlowParameters(t *testing.T) {
	provider := NewProvider("http://localhost:8080", "realm", "client", nil, zerolog.Nop())

	_, err := provider.AuthorizationURL("", "state", "challenge")
	assert.Error(t, err)
	_, err = provider.AuthorizationURL("http://localhost/cb", "", "challenge")
	assert.Error(t, err)
	_, err = provider.AuthorizationURL("http://localhost/cb", "state", "")
	assert.Error(t, err)
}

func TestExchangeCodeSendsPKCEGrant(t *testing.T) {
	var form url.Values
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/gestion-produits_commandes/protocol/openid-connect/token", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"access_token": "access-1",
			"refresh_token": "refresh-1",
			"id_token": "id-1",
			"token_type": "Bearer",
			"expires_in": 300
		}`)
	}))
	start := time.Now()

	tokens, err := provider.ExchangeCode(context.Background(), "code-1", "http://localhost:1455/auth/callback", "verifier-1")
	require.NoError(t, err)

	assert.Equal(t, "authorization_code", form.Get("grant_type"))
	assert.Equal(t, "frontend-app", form.Get("client_id"))
	assert.Equal(t, "code-1", form.Get("code"))
	assert.Equal(t, "verifier-1", form.Get("code_verifier"))

	assert.Equal(t, "access-1", tokens.AccessToken)
	assert.Equal(t, "refresh-1", tokens.RefreshToken)
	assert.WithinDuration(t, start.Add(300*time.Second), tokens.ExpiresAt, 5*time.Second)
}

func TestRefreshSendsRefreshGrant(t *testing.T) {
	var form url.Values
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		form = r.PostForm

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token": "access-2", "refresh_token": "refresh-2", "expires_in": 300}`)
	}))

	tokens, err := provider.Refresh(context.Background(), "refresh-1")
	require.NoError(t, err)

	assert.Equal(t, "refresh_token", form.Get("grant_type"))
	assert.Equal(t, "refresh-1", form.Get("refresh_token"))
	assert.Equal(t, "access-2", tokens.AccessToken)
}

func TestRefreshSurfacesProviderError(t *testing.T) {
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"error": "invalid_grant", "error_description": "Session not active"}`)
	}))

	_, err := provider.Refresh(context.Background(), "stale")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant: Session not active")
}

func TestRefreshRequiresToken(t *testing.T) {
	provider := NewProvider("http://localhost:8080", "realm", "client", nil, zerolog.Nop())

	_, err := provider.Refresh(context.Background(), "")
	assert.Error(t, err)
}

func TestLogoutPostsRevocation(t *testing.T) {
	var form url.Values
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/gestion-produits_commandes/protocol/openid-connect/logout", r.URL.Path)
		require.NoError(t, r.ParseForm())
		form = r.PostForm
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, provider.Logout(context.Background(), "refresh-1"))
	assert.Equal(t, "frontend-app", form.Get("client_id"))
	assert.Equal(t, "refresh-1", form.Get("refresh_token"))
}

func TestFetchProfile(t *testing.T) {
	provider := newTestProvider(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/realms/gestion-produits_commandes/protocol/openid-connect/userinfo", r.URL.Path)
		assert.Equal(t, "Bearer access-1", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{
			"preferred_username": "alice",
			"email": "alice@example.com",
			"given_name": "Alice",
			"family_name": "Martin"
		}`)
	}))

	profile, err := provider.FetchProfile(context.Background(), "access-1")
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, "alice@example.com", profile.Email)
	assert.Equal(t, "Alice", profile.FirstName)
	assert.Equal(t, "Martin", profile.LastName)
}

func TestClaimsReadsRealmRoles(t *testing.T) {
	provider := NewProvider("http://localhost:8080", "realm", "client", nil, zerolog.Nop())

	expires := time.Now().Add(5 * time.Minute).Truncate(time.Second)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                "sub-1",
		"preferred_username": "alice",
		"exp":                expires.Unix(),
		"realm_access": map[string]any{
			"roles": []string{"CLIENT", "offline_access"},
		},
	})
	signed, err := token.SignedString([]byte("local-test-key"))
	require.NoError(t, err)

	claims, err := provider.Claims(signed)
	require.NoError(t, err)

	assert.Equal(t, "sub-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, []string{"CLIENT", "offline_access"}, claims.Roles)
	assert.True(t, claims.ExpiresAt.Equal(expires))
}

func TestClaimsRejectsMalformedToken(t *testing.T) {
	provider := NewProvider("http://localhost:8080", "realm", "client", nil, zerolog.Nop())

	_, err := provider.Claims("not-a-jwt")
	assert.Error(t, err)
}

func TestNewPKCEPair(t *testing.T) {
	pair, err := NewPKCEPair()
	require.NoError(t, err)

	require.NotEmpty(t, pair.Verifier)
	hash := sha256.Sum256([]byte(pair.Verifier))
	assert.Equal(t, base64.RawURLEncoding.EncodeToString(hash[:]), pair.Challenge)

	other, err := NewPKCEPair()
	require.NoError(t, err)
	assert.NotEqual(t, pair.Verifier, other.Verifier)
}
