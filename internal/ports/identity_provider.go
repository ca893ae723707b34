package ports

import (
	"context"

	"github.com/radwane-khemisse/gestion-de-produits-et-commandes/internal/domain"
)

// IdentityProvider is the consumed surface of the OIDC provider: token
// renewal, logout, claims and the optional user profile. The interactive
// login flow lives in the adapter layer and hands its token set to the
// session manager.
type IdentityProvider interface {
	Refresh(ctx context.Context, refreshToken string) (domain.TokenSet, error)
	Logout(ctx context.Context, refreshToken string) error
	Claims(accessToken string) (domain.TokenClaims, error)
	FetchProfile(ctx context.Context, accessToken string) (domain.Profile, error)
}
