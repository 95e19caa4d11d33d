package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/models"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/repomanager"
)

// PostService owns post creation, feed composition, and the photo gallery.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, rm repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: rm}
}

// MakePost stores a post and its photo attachments. photoURLs point at
// already-stored blobs. The post, photos, and junction rows are written in
// a single transaction, so a mid-batch failure leaves no partial post.
// Every attached photo carries the post body as its caption.
func (s *PostService) MakePost(ctx context.Context, userID int64, text string, photoURLs []string) (int64, error) {

	if len(text) == 0 {
		return 0, common.ErrorEmptyPost
	}
	if len(text) > models.MaxPostLength {
		return 0, common.ErrorPostTooLong
	}

	var postID int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		postID, err = s.repomanager.Posts(tx).Create(ctx, userID, text)
		if err != nil {
			return err
		}

		photoRepo := s.repomanager.Photos(tx)
		for _, url := range photoURLs {
			photoID, err := photoRepo.Create(ctx, &models.Photo{
				UserID:  userID,
				URL:     url,
				Caption: text,
			})
			if err != nil {
				return err
			}
			if err := photoRepo.LinkToPost(ctx, postID, photoID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return 0, common.ErrorInternal
	}

	return postID, nil
}

// Feed assembles the personalized timeline for viewerID: posts of followed
// authors, newest first, each with its attachments, plus the viewer's own
// header attributes.
func (s *PostService) Feed(ctx context.Context, viewerID int64) (*models.Feed, error) {

	viewer, err := s.repomanager.Users(s.db).GetByID(ctx, viewerID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, common.ErrorInternal
	}

	posts, err := s.repomanager.Posts(s.db).SelectFeed(ctx, viewerID)
	if err != nil {
		return nil, common.ErrorInternal
	}

	photoRepo := s.repomanager.Photos(s.db)
	for i := range posts {
		photos, err := photoRepo.SelectForPost(ctx, posts[i].PostID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		posts[i].Photos = photos
	}

	return &models.Feed{
		Username:     viewer.Username,
		ProfilePhoto: viewer.ProfilePhoto,
		Posts:        posts,
	}, nil
}

// Gallery lists all photos owned by userID, newest first.
func (s *PostService) Gallery(ctx context.Context, userID int64) ([]models.GalleryPhoto, error) {
	gallery, err := s.repomanager.Photos(s.db).SelectGallery(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return gallery, nil
}
