package users

import (
	"context"

	"github.com/dmitrijs2005/gympro/internal/server/models"
)

type Repository interface {
	// Create fails with common.ErrAlreadyExists when the username is taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
}
