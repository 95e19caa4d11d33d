package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/server/models"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/repomanager"
)

// FollowService owns the follow graph: who may follow whom, and the
// follower/following listings derived from the edges.
type FollowService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewFollowService(db *sql.DB, rm repomanager.RepositoryManager) *FollowService {
	return &FollowService{db: db, repomanager: rm}
}

// Follow creates the edge follower→target.
//
// A private target may only be followed when it already follows the
// requester (mutual-or-invitee rule; there is no pending-request state).
// The insert itself is conditional, so a lost race surfaces as
// ErrorAlreadyFollowing rather than a duplicate edge.
func (s *FollowService) Follow(ctx context.Context, followerID int64, targetUsername string) error {

	if !ValidUsername(targetUsername) {
		return common.ErrorInvalidUsernameFormat
	}

	target, err := s.repomanager.Users(s.db).GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	if target.ID == followerID {
		return common.ErrorSelfFollow
	}

	followRepo := s.repomanager.Follows(s.db)

	if target.Private {
		followsMe, err := followRepo.Exists(ctx, target.ID, followerID)
		if err != nil {
			return common.ErrorInternal
		}
		if !followsMe {
			return common.ErrorPrivateAccount
		}
	}

	inserted, err := followRepo.Insert(ctx, followerID, target.ID)
	if err != nil {
		return common.ErrorInternal
	}
	if !inserted {
		return common.ErrorAlreadyFollowing
	}

	return nil
}

// Unfollow removes the edge follower→target.
func (s *FollowService) Unfollow(ctx context.Context, followerID int64, targetUsername string) error {

	if !ValidUsername(targetUsername) {
		return common.ErrorInvalidUsernameFormat
	}

	target, err := s.repomanager.Users(s.db).GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	deleted, err := s.repomanager.Follows(s.db).Delete(ctx, followerID, target.ID)
	if err != nil {
		return common.ErrorInternal
	}
	if !deleted {
		return common.ErrorNotFollowing
	}

	return nil
}

// Following lists the users userID follows. An empty slice is a valid
// "follows nobody" result.
func (s *FollowService) Following(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	list, err := s.repomanager.Follows(s.db).ListFollowing(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}

// Followers lists the users following userID, each annotated with whether
// userID follows them back.
func (s *FollowService) Followers(ctx context.Context, userID int64) ([]models.Follower, error) {
	list, err := s.repomanager.Follows(s.db).ListFollowers(ctx, userID)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return list, nil
}
