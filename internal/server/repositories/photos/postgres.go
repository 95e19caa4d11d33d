package photos

import (
	"context"
	"fmt"

	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, photo *models.Photo) (int64, error) {

	query :=
		`INSERT INTO photos (user_id, photo_url, photo_caption)
		 VALUES ($1, $2, $3)
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, photo.UserID, photo.URL, photo.Caption).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	photo.ID = id
	return id, nil
}

func (r *PostgresRepository) LinkToPost(ctx context.Context, postID, photoID int64) error {

	query := `INSERT INTO post_photos (post_id, photo_id) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, postID, photoID); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) SelectForPost(ctx context.Context, postID int64) ([]models.PostPhoto, error) {

	query :=
		`SELECT
		     photos.photo_url,
		     photos.photo_caption
		 FROM post_photos
		 JOIN photos ON post_photos.photo_id = photos.id
		 WHERE post_photos.post_id = $1
		 ORDER BY photos.id
		 `

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []models.PostPhoto{}
	for rows.Next() {
		var p models.PostPhoto
		if err := rows.Scan(&p.URL, &p.Caption); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) SelectGallery(ctx context.Context, userID int64) ([]models.GalleryPhoto, error) {

	query :=
		`SELECT
		     photos.photo_url,
		     photos.photo_caption,
		     photos.photo_date
		 FROM photos
		 WHERE photos.user_id = $1
		 ORDER BY photos.photo_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	gallery := []models.GalleryPhoto{}
	for rows.Next() {
		var p models.GalleryPhoto
		if err := rows.Scan(&p.URL, &p.Caption, &p.PhotoDate); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		gallery = append(gallery, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return gallery, nil
}
