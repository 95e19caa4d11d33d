package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/models"
	followsrepo "github.com/stevegmedia/voxceleris/internal/server/repositories/follows"
	photosrepo "github.com/stevegmedia/voxceleris/internal/server/repositories/photos"
	postsrepo "github.com/stevegmedia/voxceleris/internal/server/repositories/posts"
	regtokensrepo "github.com/stevegmedia/voxceleris/internal/server/repositories/regtokens"
	usersrepo "github.com/stevegmedia/voxceleris/internal/server/repositories/users"
)

// --- helpers ---

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	byIDOut *models.User
	byIDErr error

	byUsernameOut *models.User
	byUsernameErr error

	byEmailOut *models.User
	byEmailErr error

	pendingOut *models.User
	pendingErr error

	activateErr    error
	activatedID    int64
	activatedCalls int

	peopleOut []models.Person
	peopleErr error
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	u.ID = 1
	return u, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if f.byIDErr != nil {
		return nil, f.byIDErr
	}
	return f.byIDOut, nil
}

func (f *fakeUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if f.byUsernameErr != nil {
		return nil, f.byUsernameErr
	}
	return f.byUsernameOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.byEmailErr != nil {
		return nil, f.byEmailErr
	}
	return f.byEmailOut, nil
}

func (f *fakeUsersRepo) GetPendingVerification(ctx context.Context, email string) (*models.User, error) {
	if f.pendingErr != nil {
		return nil, f.pendingErr
	}
	return f.pendingOut, nil
}

func (f *fakeUsersRepo) Activate(ctx context.Context, id int64) error {
	f.activatedID = id
	f.activatedCalls++
	return f.activateErr
}

func (f *fakeUsersRepo) ListPeople(ctx context.Context, callerID int64) ([]models.Person, error) {
	if f.peopleErr != nil {
		return nil, f.peopleErr
	}
	return f.peopleOut, nil
}

type fakeFollowsRepo struct {
	insertOut   bool
	insertErr   error
	insertCalls int

	deleteOut bool
	deleteErr error

	existsOut bool
	existsErr error

	existsFollowerID int64
	existsFollowedID int64

	followingOut []models.UserSummary
	followingErr error

	followersOut []models.Follower
	followersErr error
}

func (f *fakeFollowsRepo) Insert(ctx context.Context, followerID, followedID int64) (bool, error) {
	f.insertCalls++
	if f.insertErr != nil {
		return false, f.insertErr
	}
	return f.insertOut, nil
}

func (f *fakeFollowsRepo) Delete(ctx context.Context, followerID, followedID int64) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	return f.deleteOut, nil
}

func (f *fakeFollowsRepo) Exists(ctx context.Context, followerID, followedID int64) (bool, error) {
	f.existsFollowerID = followerID
	f.existsFollowedID = followedID
	if f.existsErr != nil {
		return false, f.existsErr
	}
	return f.existsOut, nil
}

func (f *fakeFollowsRepo) ListFollowing(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	if f.followingErr != nil {
		return nil, f.followingErr
	}
	return f.followingOut, nil
}

func (f *fakeFollowsRepo) ListFollowers(ctx context.Context, userID int64) ([]models.Follower, error) {
	if f.followersErr != nil {
		return nil, f.followersErr
	}
	return f.followersOut, nil
}

type fakePostsRepo struct {
	createID  int64
	createErr error

	feedOut []models.FeedPost
	feedErr error
}

func (f *fakePostsRepo) Create(ctx context.Context, userID int64, text string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	return f.createID, nil
}

func (f *fakePostsRepo) SelectFeed(ctx context.Context, viewerID int64) ([]models.FeedPost, error) {
	if f.feedErr != nil {
		return nil, f.feedErr
	}
	return f.feedOut, nil
}

type fakePhotosRepo struct {
	createIDs   []int64
	createErr   error
	createCalls int
	captions    []string

	linkErr   error
	linkCalls int

	forPostOut map[int64][]models.PostPhoto
	forPostErr error

	galleryOut []models.GalleryPhoto
	galleryErr error
}

func (f *fakePhotosRepo) Create(ctx context.Context, photo *models.Photo) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.captions = append(f.captions, photo.Caption)
	id := f.createIDs[f.createCalls]
	f.createCalls++
	return id, nil
}

func (f *fakePhotosRepo) LinkToPost(ctx context.Context, postID, photoID int64) error {
	f.linkCalls++
	return f.linkErr
}

func (f *fakePhotosRepo) SelectForPost(ctx context.Context, postID int64) ([]models.PostPhoto, error) {
	if f.forPostErr != nil {
		return nil, f.forPostErr
	}
	return f.forPostOut[postID], nil
}

func (f *fakePhotosRepo) SelectGallery(ctx context.Context, userID int64) ([]models.GalleryPhoto, error) {
	if f.galleryErr != nil {
		return nil, f.galleryErr
	}
	return f.galleryOut, nil
}

type fakeRegTokensRepo struct {
	createErr   error
	createCalls int
	lastToken   string

	findOut *models.RegistrationToken
	findErr error

	deleteErr    error
	deletedToken string
}

func (f *fakeRegTokensRepo) Create(ctx context.Context, userID int64, token string, expires time.Time) error {
	f.createCalls++
	f.lastToken = token
	return f.createErr
}

func (f *fakeRegTokensRepo) FindValid(ctx context.Context, token string) (*models.RegistrationToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRegTokensRepo) DeleteByToken(ctx context.Context, token string) error {
	f.deletedToken = token
	return f.deleteErr
}

type fakeRepoManager struct {
	u  *fakeUsersRepo
	f  *fakeFollowsRepo
	p  *fakePostsRepo
	ph *fakePhotosRepo
	rt *fakeRegTokensRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error   { return nil }
func (m *fakeRepoManager) Users(db dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Follows(db dbx.DBTX) followsrepo.Repository     { return m.f }
func (m *fakeRepoManager) Posts(db dbx.DBTX) postsrepo.Repository         { return m.p }
func (m *fakeRepoManager) Photos(db dbx.DBTX) photosrepo.Repository       { return m.ph }
func (m *fakeRepoManager) RegTokens(db dbx.DBTX) regtokensrepo.Repository { return m.rt }

type fakeMailer struct {
	sendErr error
	sent    int
	lastTo  string
}

func (f *fakeMailer) Send(to, subject, body, altBody string) error {
	f.sent++
	f.lastTo = to
	return f.sendErr
}
