package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, username, passhash, first_name, last_name, phone, dob, profile_photo, bio, location, private_account, active_account, created_at`

func scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Email, &user.Username, &user.PassHash,
		&user.FirstName, &user.LastName, &user.Phone, &user.DOB,
		&user.ProfilePhoto, &user.Bio, &user.Location,
		&user.Private, &user.Active, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return user, nil
}

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query :=
		`INSERT INTO users (email, username, passhash, first_name, last_name, phone, dob, profile_photo, bio, location, private_account, active_account)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id
		 `

	err := r.db.QueryRowContext(ctx, query,
		user.Email, user.Username, user.PassHash,
		user.FirstName, user.LastName, user.Phone, user.DOB,
		user.ProfilePhoto, user.Bio, user.Location,
		user.Private, user.Active).Scan(&user.ID)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, username))
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetPendingVerification(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 LEFT JOIN registration_tokens ON users.id = registration_tokens.user_id
		 WHERE users.email = $1 AND users.active_account = FALSE AND registration_tokens.token IS NULL
		 `
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) Activate(ctx context.Context, id int64) error {
	query := `UPDATE users SET active_account = TRUE WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListPeople(ctx context.Context, callerID int64) ([]models.Person, error) {
	query :=
		`SELECT
		     users.id,
		     users.username,
		     users.profile_photo,
		     users.location,
		     users.bio,
		     EXISTS (
		         SELECT 1 FROM follows
		         WHERE follows.follower_id = $1 AND follows.followed_id = users.id
		     ) AS is_following,
		     EXISTS (
		         SELECT 1 FROM follows
		         WHERE follows.follower_id = users.id AND follows.followed_id = $1
		     ) AS is_followed_by
		 FROM users
		 WHERE users.id <> $1
		 ORDER BY users.username
		 `

	rows, err := r.db.QueryContext(ctx, query, callerID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	people := []models.Person{}
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Username, &p.ProfilePhoto, &p.Location, &p.Bio, &p.IsFollowing, &p.IsFollowedBy); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return people, nil
}
