package follows

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

func (r *PostgresRepository) Insert(ctx context.Context, followerID, followedID int64) (bool, error) {

	query :=
		`INSERT INTO follows (follower_id, followed_id)
		 VALUES ($1, $2)
		 ON CONFLICT (follower_id, followed_id) DO NOTHING
		 `

	res, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {

	query := `DELETE FROM follows WHERE follower_id = $1 AND followed_id = $2`

	res, err := r.db.ExecContext(ctx, query, followerID, followedID)
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return affected > 0, nil
}

func (r *PostgresRepository) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {

	query :=
		`SELECT EXISTS (
		     SELECT 1 FROM follows WHERE follower_id = $1 AND followed_id = $2
		 )`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, followerID, followedID).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) ListFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error) {

	query :=
		`SELECT
		     users.id,
		     users.username,
		     users.profile_photo,
		     users.location,
		     users.bio
		 FROM follows
		 JOIN users ON follows.followed_id = users.id
		 WHERE follows.follower_id = $1
		 ORDER BY users.username
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	following := []models.UserSummary{}
	for rows.Next() {
		var u models.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.ProfilePhoto, &u.Location, &u.Bio); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		following = append(following, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return following, nil
}

func (r *PostgresRepository) ListFollowers(ctx context.Context, userID int64) ([]models.Follower, error) {

	// The mutual join is keyed on the two endpoints only, so follower
	// identity from unrelated edges cannot leak into follows_back.
	query :=
		`SELECT
		     users.id,
		     users.username,
		     users.profile_photo,
		     users.location,
		     users.bio,
		     CASE WHEN mutual.follower_id IS NOT NULL THEN 1 ELSE 0 END AS follows_back
		 FROM follows
		 JOIN users ON follows.follower_id = users.id
		 LEFT JOIN follows AS mutual
		     ON mutual.follower_id = $1
		     AND mutual.followed_id = users.id
		 WHERE follows.followed_id = $1
		 ORDER BY users.username
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	followers := []models.Follower{}
	for rows.Next() {
		var f models.Follower
		if err := rows.Scan(&f.ID, &f.Username, &f.ProfilePhoto, &f.Location, &f.Bio, &f.FollowsBack); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		followers = append(followers, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return followers, nil
}
