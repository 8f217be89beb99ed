package googleauth

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/idtoken"
)

// Identity is the subset of a verified Google ID token the auth flow needs.
type Identity struct {
	Email string
	Name  string
}

// Verifier validates Google ID tokens against the configured OAuth audience.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type verifier struct {
	audience string
}

// NewVerifier creates a Verifier for the given OAuth client id.
func NewVerifier(audience string) Verifier {
	return &verifier{audience: audience}
}

func (v *verifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := idtoken.Validate(ctx, token, v.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidIDToken, err)
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidIDToken
	}
	name, _ := payload.Claims["name"].(string)

	return &Identity{Email: email, Name: name}, nil
}

// ErrInvalidIDToken covers missing, expired, and otherwise unverifiable
// tokens; the handler maps it to a 400.
var ErrInvalidIDToken = errors.New("invalid Google ID token")
