// Package repomanager wires the per-entity repositories to a database
// handle. Repositories are constructed per call against a dbx.DBTX, so the
// same manager serves both direct and transactional access.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/follows"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/photos"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/posts"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/regtokens"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Follows(db dbx.DBTX) follows.Repository
	Posts(db dbx.DBTX) posts.Repository
	Photos(db dbx.DBTX) photos.Repository
	RegTokens(db dbx.DBTX) regtokens.Repository
}
