package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/gympro/internal/client/repositories/metadata"
)

const (
	keyUserID      = "user_id"
	keyAccessToken = "access_token"
)

type AuthClient interface {
	Register(ctx context.Context, username, password string) error
	Login(ctx context.Context, username, password string) (userID, token string, err error)
	SetAccessToken(token string)
	Ping(ctx context.Context) error
}

// OwnedCache is the part of the workout cache cleared on logout.
type OwnedCache interface {
	DeleteAllByParent(ctx context.Context, userID string) error
}

// AuthService manages the session: it logs in against the server and
// keeps the user id and access token in the metadata table so that the
// session survives restarts and offline use.
type AuthService struct {
	client AuthClient
	meta   metadata.Repository
	owned  OwnedCache
}

func NewAuthService(c AuthClient, meta metadata.Repository, owned OwnedCache) *AuthService {
	return &AuthService{client: c, meta: meta, owned: owned}
}

func (a *AuthService) Register(ctx context.Context, username, password string) error {
	if err := a.client.Register(ctx, username, password); err != nil {
		return fmt.Errorf("register error: %w", err)
	}
	return nil
}

// Login authenticates and stores the session. It returns the user id.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	userID, token, err := a.client.Login(ctx, username, password)
	if err != nil {
		return "", fmt.Errorf("login error: %w", err)
	}

	err = a.meta.SetMany(ctx, map[string][]byte{
		keyUserID:      []byte(userID),
		keyAccessToken: []byte(token),
	})
	if err != nil {
		return "", fmt.Errorf("session saving error: %w", err)
	}
	return userID, nil
}

// Restore loads a stored session into the client. It returns "" when there
// is none.
func (a *AuthService) Restore(ctx context.Context) (string, error) {
	userID, err := a.CurrentUserID(ctx)
	if err != nil || userID == "" {
		return "", err
	}
	token, err := a.meta.Get(ctx, keyAccessToken)
	if err != nil {
		return "", err
	}
	a.client.SetAccessToken(string(token))
	return userID, nil
}

// Logout forgets the session and the user's cached workouts.
func (a *AuthService) Logout(ctx context.Context) error {
	userID, err := a.CurrentUserID(ctx)
	if err != nil {
		return err
	}
	if userID != "" && a.owned != nil {
		if err := a.owned.DeleteAllByParent(ctx, userID); err != nil {
			return fmt.Errorf("cache cleanup error: %w", err)
		}
	}
	a.client.SetAccessToken("")
	return a.meta.Delete(ctx, keyUserID, keyAccessToken)
}

func (a *AuthService) CurrentUserID(ctx context.Context) (string, error) {
	v, err := a.meta.Get(ctx, keyUserID)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (a *AuthService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}
