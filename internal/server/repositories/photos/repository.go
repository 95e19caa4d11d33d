package photos

import (
	"context"

	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, photo *models.Photo) (int64, error)
	LinkToPost(ctx context.Context, postID, photoID int64) error
	// SelectForPost returns the photos attached to a post, in insertion order.
	SelectForPost(ctx context.Context, postID int64) ([]models.PostPhoto, error)
	// SelectGallery returns all photos owned by a user, newest first.
	SelectGallery(ctx context.Context, userID int64) ([]models.GalleryPhoto, error)
}
