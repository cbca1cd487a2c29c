package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/maze-collapse/domain"
	"github.com/beka-birhanu/maze-collapse/service/i"
	"github.com/google/uuid"
)

const (
	accessTokenKind = "access"
	accessTokenTTL  = 24 * time.Hour
)

var (
	ErrInvalidAccessToken = errors.New("invalid access token")
)

// Auth registers players and issues access tokens.
type Auth struct {
	playerRepo i.PlayerRepo
	tokenizer  i.Tokenizer
	logger     i.Logger
}

// NewAuthService creates an Auth service.
func NewAuthService(playerRepo i.PlayerRepo, tokenizer i.Tokenizer, logger i.Logger) (*Auth, error) {
	if playerRepo == nil || tokenizer == nil || logger == nil {
		return nil, errors.New("auth service requires a player repo, tokenizer and logger")
	}
	return &Auth{
		playerRepo: playerRepo,
		tokenizer:  tokenizer,
		logger:     logger,
	}, nil
}

// Register creates a new player account.
func (a *Auth) Register(ctx context.Context, username, password string) (*domain.Player, error) {
	if _, err := a.playerRepo.ByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameConflict
	} else if !errors.Is(err, domain.ErrPlayerNotFound) {
		return nil, err
	}

	player, err := domain.NewPlayer(domain.PlayerConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	})
	if err != nil {
		return nil, err
	}

	if err := a.playerRepo.Save(ctx, player); err != nil {
		return nil, err
	}

	a.logger.Info(fmt.Sprintf("Registered player: ID=%s Username=%s", player.ID, player.Username))
	return player, nil
}

// SignIn checks the credentials and returns the player with a fresh access token.
func (a *Auth) SignIn(ctx context.Context, username, password string) (*domain.Player, string, error) {
	player, err := a.playerRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, "", domain.ErrInvalidCredentials
	}

	if !player.VerifyPassword(password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"kind":      accessTokenKind,
		"player_id": player.ID.String(),
		"username":  player.Username,
	}, accessTokenTTL)
	if err != nil {
		return nil, "", err
	}

	return player, token, nil
}

// Identify resolves the player behind decoded access token claims.
func (a *Auth) Identify(claims map[string]interface{}) (domain.Identity, error) {
	if kind, _ := claims["kind"].(string); kind != accessTokenKind {
		return domain.Identity{}, ErrInvalidAccessToken
	}

	rawID, _ := claims["player_id"].(string)
	id, err := uuid.Parse(rawID)
	if err != nil {
		return domain.Identity{}, ErrInvalidAccessToken
	}

	username, _ := claims["username"].(string)
	if username == "" {
		return domain.Identity{}, ErrInvalidAccessToken
	}

	return domain.Identity{PlayerID: id, Username: username}, nil
}
