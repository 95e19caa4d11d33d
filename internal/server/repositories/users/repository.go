package users

import (
	"context"

	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetPendingVerification returns the inactive user with the given email
	// that has no live registration token.
	GetPendingVerification(ctx context.Context, email string) (*models.User, error)
	Activate(ctx context.Context, id int64) error
	// ListPeople returns all users except the caller, annotated with both
	// relationship directions relative to the caller.
	ListPeople(ctx context.Context, callerID int64) ([]models.Person, error)
}
