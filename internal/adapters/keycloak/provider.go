package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/ports"
)

const maxProviderResponseBytes = 1 << 20

const (
	authPath     = "protocol/openid-connect/auth"
	tokenPath    = "protocol/openid-connect/token"
	logoutPath   = "protocol/openid-connect/logout"
	userinfoPath = "protocol/openid-connect/userinfo"
)

// Provider talks to a Keycloak realm: code exchange, refresh grant,
// logout and userinfo.
type Provider struct {
	BaseURL        string
	Realm          string
	ClientID       string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
	Logger         zerolog.Logger

	now func() time.Time
}

var _ ports.IdentityProvider = (*Provider)(nil)

func NewProvider(baseURL, realm, clientID string, client *http.Client, logger zerolog.Logger) *Provider {
	return &Provider{
		BaseURL:    baseURL,
		Realm:      realm,
		ClientID:   clientID,
		HTTPClient: client,
		Logger:     logger,
		now:        time.Now,
	}
}

// AuthorizationURL builds the interactive login URL for the PKCE flow.
func (p *Provider) AuthorizationURL(redirectURI, state, codeChallenge string) (string, error) {
	if redirectURI == "" {
		return "", errors.New("redirect uri is required")
	}
	if state == "" {
		return "", errors.New("state is required")
	}
	if codeChallenge == "" {
		return "", errors.New("code challenge is required")
	}

	endpoint, err := p.realmURL(authPath)
	if err != nil {
		return "", err
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("parse authorization url: %w", err)
	}
	q := parsed.Query()
	q.Set("response_type", "code")
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", "openid profile email")
	q.Set("state", state)
	q.Set("code_challenge", codeChallenge)
	q.Set("code_challenge_method", PKCEChallengeMethodS256)
	parsed.RawQuery = q.Encode()

	return parsed.String(), nil
}

// ExchangeCode trades an authorization code for a token set.
func (p *Provider) ExchangeCode(ctx context.Context, code, redirectURI, codeVerifier string) (domain.TokenSet, error) {
	if code == "" {
		return domain.TokenSet{}, errors.New("authorization code is required")
	}

	values := url.Values{}
	values.Set("grant_type", "authorization_code")
	values.Set("client_id", p.ClientID)
	values.Set("code", code)
	values.Set("redirect_uri", redirectURI)
	values.Set("code_verifier", codeVerifier)

	return p.requestTokens(ctx, "exchange code", values)
}

// Refresh renews the token set with the refresh grant.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (domain.TokenSet, error) {
	if refreshToken == "" {
		return domain.TokenSet{}, errors.New("refresh token is required")
	}

	values := url.Values{}
	values.Set("grant_type", "refresh_token")
	values.Set("client_id", p.ClientID)
	values.Set("refresh_token", refreshToken)

	return p.requestTokens(ctx, "refresh token", values)
}

// Logout revokes the session at the provider.
func (p *Provider) Logout(ctx context.Context, refreshToken string) error {
	endpoint, err := p.realmURL(logoutPath)
	if err != nil {
		return err
	}

	values := url.Values{}
	values.Set("client_id", p.ClientID)
	values.Set("refresh_token", refreshToken)

	requestCtx, cancel := p.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("create logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("request logout: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("request logout: %s", decodeProviderError(resp))
	}

	p.Logger.Debug().Msg("provider session revoked")
	return nil
}

// FetchProfile loads the userinfo profile for an access token.
func (p *Provider) FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error) {
	endpoint, err := p.realmURL(userinfoPath)
	if err != nil {
		return domain.Profile{}, err
	}

	requestCtx, cancel := p.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("create userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("request userinfo: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return domain.Profile{}, fmt.Errorf("request userinfo: %s", decodeProviderError(resp))
	}

	var payload struct {
		PreferredUsername string `json:"preferred_username"`
		Email             string `json:"email"`
		GivenName         string `json:"given_name"`
		FamilyName        string `json:"family_name"`
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderResponseBytes)).Decode(&payload); err != nil {
		return domain.Profile{}, fmt.Errorf("decode userinfo response: %w", err)
	}

	return domain.Profile{
		Username:  payload.PreferredUsername,
		Email:     payload.Email,
		FirstName: payload.GivenName,
		LastName:  payload.FamilyName,
	}, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type providerErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p *Provider) requestTokens(ctx context.Context, op string, values url.Values) (domain.TokenSet, error) {
	endpoint, err := p.realmURL(tokenPath)
	if err != nil {
		return domain.TokenSet{}, err
	}

	requestCtx, cancel := p.requestContext(ctx)
	defer cancel()
	req, err := http.NewRequestWithContext(requestCtx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return domain.TokenSet{}, fmt.Errorf("create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient().Do(req)
	if err != nil {
		return domain.TokenSet{}, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail := decodeProviderError(resp)
		p.Logger.Debug().Str("op", op).Int("status", resp.StatusCode).Str("detail", detail).Msg("token request rejected")
		return domain.TokenSet{}, fmt.Errorf("%s: %s", op, detail)
	}

	var payload tokenResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderResponseBytes)).Decode(&payload); err != nil {
		return domain.TokenSet{}, fmt.Errorf("decode %s response: %w", op, err)
	}
	if payload.AccessToken == "" {
		return domain.TokenSet{}, fmt.Errorf("%s: response missing access token", op)
	}

	tokens := domain.TokenSet{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		IDToken:      payload.IDToken,
		TokenType:    payload.TokenType,
	}
	if payload.ExpiresIn > 0 {
		tokens.ExpiresAt = p.now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	return tokens, nil
}

func (p *Provider) realmURL(path string) (string, error) {
	if p.BaseURL == "" {
		return "", errors.New("provider base url is required")
	}
	if p.Realm == "" {
		return "", errors.New("provider realm is required")
	}

	parsed, err := url.Parse(p.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse provider base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("provider base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("provider base url host is required")
	}

	endpoint, err := parsed.Parse(strings.TrimSuffix(parsed.Path, "/") + "/realms/" + url.PathEscape(p.Realm) + "/" + path)
	if err != nil {
		return "", fmt.Errorf("build realm url: %w", err)
	}
	return endpoint.String(), nil
}

func (p *Provider) httpClient() *http.Client {
	if p.HTTPClient != nil {
		return p.HTTPClient
	}
	return http.DefaultClient
}

func (p *Provider) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := p.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func decodeProviderError(resp *http.Response) string {
	var payload providerErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxProviderResponseBytes)).Decode(&payload); err != nil {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if payload.Error == "" {
		return fmt.Sprintf("status %d", resp.StatusCode)
	}
	if payload.ErrorDescription != "" {
		return payload.Error + ": " + payload.ErrorDescription
	}
	return payload.Error
}
