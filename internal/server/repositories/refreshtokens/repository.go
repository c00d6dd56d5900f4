// Package refreshtokens stores the opaque refresh tokens handed out at
// login. A token is single use: refreshing deletes it and issues a new one.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID string, token string, validity time.Duration) error
	// Find returns common.ErrorNotFound for an unknown token.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	// Delete is a no-op for an unknown token.
	Delete(ctx context.Context, token string) error
	// DeleteByUser is used on logout.
	DeleteByUser(ctx context.Context, userID string) error
}
