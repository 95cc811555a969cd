package account

import (
	"context"
	"fmt"

	"google.golang.org/api/idtoken"

	"github.com/JaimeStill/printmg/internal/backend"
)

// Verifier checks a Google ID token and returns the identity it carries.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (*backend.GoogleProfile, error)
}

// GoogleVerifier validates ID tokens against Google's published keys for one
// OAuth client.
type GoogleVerifier struct {
	clientID string
}

// NewGoogleVerifier returns a verifier for clientID, or nil when no client
// is configured.
func NewGoogleVerifier(clientID string) Verifier {
	if clientID == "" {
		return nil
	}
	return &GoogleVerifier{clientID: clientID}
}

// Verify validates idToken's signature, audience and expiry.
func (g *GoogleVerifier) Verify(ctx context.Context, idToken string) (*backend.GoogleProfile, error) {
	payload, err := idtoken.Validate(ctx, idToken, g.clientID)
	if err != nil {
		return nil, fmt.Errorf("verify google token: %w", err)
	}
	return ProfileFromClaims(payload.Subject, payload.Claims)
}

// ProfileFromClaims extracts the profile fields forwarded to the backend.
func ProfileFromClaims(subject string, claims map[string]any) (*backend.GoogleProfile, error) {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}

	profile := &backend.GoogleProfile{
		Subject:    subject,
		Email:      str("email"),
		Name:       str("name"),
		GivenName:  str("given_name"),
		FamilyName: str("family_name"),
		Picture:    str("picture"),
	}
	if profile.Email == "" {
		return nil, fmt.Errorf("google token carries no email")
	}
	if verified, ok := claims["email_verified"].(bool); ok && !verified {
		return nil, fmt.Errorf("google email %s is not verified", profile.Email)
	}

	return profile, nil
}
