package services

import (
	"context"
	"database/sql"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/server/models"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/repomanager"
)

// DirectoryService exposes the public user listing.
type DirectoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDirectoryService(db *sql.DB, rm repomanager.RepositoryManager) *DirectoryService {
	return &DirectoryService{db: db, repomanager: rm}
}

// People lists every user except the caller, with both relationship flags
// computed against the caller's edges.
func (s *DirectoryService) People(ctx context.Context, callerID int64) ([]models.Person, error) {
	people, err := s.repomanager.Users(s.db).ListPeople(ctx, callerID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return people, nil
}
