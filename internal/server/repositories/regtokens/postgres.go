package regtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

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

func (r *PostgresRepository) Create(ctx context.Context, userID int64, token string, expires time.Time) error {

	query :=
		`INSERT INTO registration_tokens (user_id, token, token_expires)
		 VALUES ($1, $2, $3)
		 `

	if _, err := r.db.ExecContext(ctx, query, userID, token, expires); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindValid(ctx context.Context, token string) (*models.RegistrationToken, error) {

	query :=
		`SELECT user_id, token, token_expires FROM registration_tokens
		 WHERE token = $1 AND token_expires > now()
		 `

	rt := &models.RegistrationToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(&rt.UserID, &rt.Token, &rt.Expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return rt, nil
}

func (r *PostgresRepository) DeleteByToken(ctx context.Context, token string) error {

	query := `DELETE FROM registration_tokens WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
