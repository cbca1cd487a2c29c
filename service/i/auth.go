package i

import (
	"context"

	"github.com/beka-birhanu/maze-collapse/domain"
)

// Authenticator registers players and signs them in.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*domain.Player, error)
	SignIn(ctx context.Context, username, password string) (*domain.Player, string, error)

	// Identify resolves the claims of a decoded access token.
	Identify(claims map[string]interface{}) (domain.Identity, error)
}
