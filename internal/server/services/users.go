// Package services holds the server business logic behind the gRPC
// handlers: accounts, owner-scoped documents and image assets.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/gympro/internal/common"
	"github.com/dmitrijs2005/gympro/internal/server/auth"
	"github.com/dmitrijs2005/gympro/internal/server/config"
	"github.com/dmitrijs2005/gympro/internal/server/models"
	"github.com/dmitrijs2005/gympro/internal/server/repositories/repomanager"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.Issuer
	validate    *validator.Validate
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration),
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

type credentials struct {
	UserName string `validate:"required,min=3,max=64"`
	// bcrypt ignores input past 72 bytes
	Password string `validate:"required,min=6,max=72"`
}

var hashPassword = func(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(password, bcrypt.DefaultCost)
}

// decoyHash is compared against when the user does not exist, so a miss
// costs as much as a wrong password.
var decoyHash = sync.OnceValue(func() []byte {
	h, _ := bcrypt.GenerateFromPassword([]byte("decoy-password"), bcrypt.DefaultCost)
	return h
})

func (s *UserService) Register(ctx context.Context, userName, password string) (*models.User, error) {
	if err := s.validate.Struct(credentials{UserName: userName, Password: password}); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}

	hash, err := hashPassword([]byte(password))
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repomanager.Users(s.db).Create(ctx, &models.User{UserName: userName, PasswordHash: hash})
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return user, nil
}

// Login checks the password and returns the account id with a fresh access
// token. Unknown users and wrong passwords both yield common.ErrUnauthorized.
func (s *UserService) Login(ctx context.Context, userName, password string) (string, string, error) {
	user, err := s.repomanager.Users(s.db).GetUserByLogin(ctx, userName)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			_ = bcrypt.CompareHashAndPassword(decoyHash(), []byte(password))
			return "", "", common.ErrUnauthorized
		}
		return "", "", fmt.Errorf("error loading user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", "", common.ErrUnauthorized
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", "", fmt.Errorf("generate token: %w", err)
	}
	return user.ID, token, nil
}

// AccountID resolves an access token for the auth interceptor.
func (s *UserService) AccountID(token string) (string, error) {
	return s.tokens.AccountID(token)
}
