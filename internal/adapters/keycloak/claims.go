package keycloak

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

type accessTokenClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	RealmAccess       struct {
		Roles []string `json:"roles"`
	} `json:"realm_access"`
}

// Claims reads subject, preferred username, realm roles and expiry out of
// an access token. The signature is deliberately not verified: the client
// only mirrors what the token says about the session, the resource
// servers verify it on every request.
func (p *Provider) Claims(accessToken string) (domain.TokenClaims, error) {
	var claims accessTokenClaims
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, &claims); err != nil {
		return domain.TokenClaims{}, fmt.Errorf("parse access token: %w", err)
	}

	out := domain.TokenClaims{
		Subject:  claims.Subject,
		Username: claims.PreferredUsername,
		Roles:    claims.RealmAccess.Roles,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
