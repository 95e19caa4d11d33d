package posts

import (
	"context"

	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, userID int64, text string) (int64, error)
	// SelectFeed returns posts authored by users the viewer follows,
	// newest first, without attachments.
	SelectFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error)
}
