package domain

import "time"

// Session is the local record of the authenticated user. It is created
// uninitialized at process start, owned by the session manager, and only
// ever reset to unauthenticated, never destroyed.
type Session struct {
	Initialized   bool
	Authenticated bool
	Roles         []string
	SubjectID     string
	Username      string
	Profile       *Profile
}

func (s Session) HasRole(role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// DisplayName falls back from the loaded profile to token claims, the way
// the original client resolved its username.
func (s Session) DisplayName() string {
	if s.Profile != nil && s.Profile.Username != "" {
		return s.Profile.Username
	}
	if s.Username != "" {
		return s.Username
	}
	return s.SubjectID
}

// Profile is the optional identity-provider user profile. Loading it is
// best-effort; a session is fully usable with a nil profile.
type Profile struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
}

// TokenSet is the bearer credential material issued by the identity
// provider. Only the session manager holds one beyond the scope of a
// single outgoing request.
type TokenSet struct {
	AccessToken  string
	RefreshToken string
	IDToken      string
	TokenType    string
	ExpiresAt    time.Time
}

func (t TokenSet) ExpiringSoon(now time.Time, skew time.Duration) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !t.ExpiresAt.After(now.Add(skew))
}

// TokenClaims are the fields read out of an access token: the subject,
// preferred username, realm roles and expiry.
type TokenClaims struct {
	Subject   string
	Username  string
	Roles     []string
	ExpiresAt time.Time
}
