package users

import (
	"context"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	// Create stores user and returns it with ID and CreatedAt filled in.
	// A taken username yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByLogin(ctx context.Context, login string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
