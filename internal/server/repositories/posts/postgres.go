package posts

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

func (r *PostgresRepository) Create(ctx context.Context, userID int64, text string) (int64, error) {

	query :=
		`INSERT INTO posts (user_id, post_text)
		 VALUES ($1, $2)
		 RETURNING id
		 `

	var id int64
	if err := r.db.QueryRowContext(ctx, query, userID, text).Scan(&id); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return id, nil
}

func (r *PostgresRepository) SelectFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {

	// A post appears only when the viewer follows its author; the viewer's
	// own posts are excluded by construction, since the join goes through
	// the follow edge.
	query :=
		`SELECT
		     posts.id AS post_id,
		     posts.post_text,
		     posts.post_date,
		     users.username,
		     users.profile_photo
		 FROM posts
		 JOIN follows ON posts.user_id = follows.followed_id
		 JOIN users ON posts.user_id = users.id
		 WHERE follows.follower_id = $1
		 ORDER BY posts.post_date DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	feed := []models.FeedPost{}
	for rows.Next() {
		var p models.FeedPost
		if err := rows.Scan(&p.PostID, &p.Text, &p.PostDate, &p.Username, &p.ProfilePhoto); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		p.Photos = []models.PostPhoto{}
		feed = append(feed, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return feed, nil
}
