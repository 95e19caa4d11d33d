package regtokens

import (
	"context"
	"time"

	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, token string, expires time.Time) error
	// FindValid returns the token row when it exists and has not expired.
	FindValid(ctx context.Context, token string) (*models.RegistrationToken, error)
	DeleteByToken(ctx context.Context, token string) error
}
