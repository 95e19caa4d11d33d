package follows

import (
	"context"

	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type Repository interface {
	// Insert creates the edge follower→followed. Returns false when the
	// edge already existed; the insert is conditional, so concurrent
	// duplicates resolve safely at the storage layer.
	Insert(ctx context.Context, followerID, followedID int64) (bool, error)
	// Delete removes the edge follower→followed. Returns false when there
	// was no edge to remove.
	Delete(ctx context.Context, followerID, followedID int64) (bool, error)
	Exists(ctx context.Context, followerID, followedID int64) (bool, error)
	ListFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error)
	ListFollowers(ctx context.Context, userID int64) ([]models.Follower, error)
}
