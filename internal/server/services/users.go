// Package services contains the application services sitting between the
// HTTP layer and the repositories.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/dbx"
	"github.com/stevegmedia/voxceleris/internal/server/auth"
	"github.com/stevegmedia/voxceleris/internal/server/config"
	"github.com/stevegmedia/voxceleris/internal/server/mailer"
	"github.com/stevegmedia/voxceleris/internal/server/models"
	"github.com/stevegmedia/voxceleris/internal/server/repositories/repomanager"
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// ValidUsername reports whether s is a well-formed handle.
func ValidUsername(s string) bool {
	return usernameRe.MatchString(s)
}

// RegistrationTokenBytes is the number of random bytes in a verification
// token; the encoded token is twice as long.
const RegistrationTokenBytes = 16

// UserService implements registration, verification, and login.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	mail        mailer.Sender
	config      *config.Config
}

func NewUserService(db *sql.DB, rm repomanager.RepositoryManager, mail mailer.Sender, cfg *config.Config) *UserService {
	return &UserService{db: db, repomanager: rm, mail: mail, config: cfg}
}

// RegisterParams carries the registration form. ProfilePhoto is the stored
// URL of an already-uploaded photo, or empty.
type RegisterParams struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	Phone        string
	DOB          string
	Bio          string
	Location     string
	Private      bool
	Password     string
	ProfilePhoto string
}

// Register creates an inactive account and emails a verification link.
// A mail dispatch failure does not undo the account: the user can request a
// resend later.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*models.User, error) {

	if !ValidUsername(p.Username) {
		return nil, common.ErrorInvalidUsernameFormat
	}

	userRepo := s.repomanager.Users(s.db)

	if _, err := userRepo.GetByEmail(ctx, p.Email); err == nil {
		return nil, common.ErrorEmailTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	if _, err := userRepo.GetByUsername(ctx, p.Username); err == nil {
		return nil, common.ErrorUsernameTaken
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(p.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrorInternal
	}

	user := &models.User{
		Email:        p.Email,
		Username:     p.Username,
		PassHash:     string(hash),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Phone:        p.Phone,
		DOB:          p.DOB,
		ProfilePhoto: p.ProfilePhoto,
		Bio:          p.Bio,
		Location:     p.Location,
		Private:      p.Private,
		Active:       false,
	}

	user, err = userRepo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	if err := s.issueVerification(ctx, user); err != nil {
		return user, err
	}

	return user, nil
}

// issueVerification creates a fresh registration token and emails the
// verification link.
func (s *UserService) issueVerification(ctx context.Context, user *models.User) error {
	token, err := common.MakeRandHexString(RegistrationTokenBytes)
	if err != nil {
		return common.ErrorInternal
	}

	expires := time.Now().Add(s.config.TokenValidityDuration)
	if err := s.repomanager.RegTokens(s.db).Create(ctx, user.ID, token, expires); err != nil {
		return common.ErrorInternal
	}

	link := fmt.Sprintf("%s/verify?token=%s", s.config.SiteURL, token)
	subject := s.config.SiteName + " - Verify Your Account"
	body := fmt.Sprintf("Please click the following link to verify your account: <a href='%s'>%s</a>", link, link)
	altBody := "Please visit the following link to verify your account: " + link

	return s.mail.Send(user.Email, subject, body, altBody)
}

// Verify consumes a registration token: the account is activated and the
// token deleted in one transaction.
func (s *UserService) Verify(ctx context.Context, token string) error {

	if !ValidUsername(token) {
		return common.ErrInvalidToken
	}

	rt, err := s.repomanager.RegTokens(s.db).FindValid(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidToken
		}
		return common.ErrorInternal
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repomanager.Users(tx).Activate(ctx, rt.UserID); err != nil {
			return err
		}
		return s.repomanager.RegTokens(tx).DeleteByToken(ctx, rt.Token)
	})
	if err != nil {
		return common.ErrorInternal
	}

	return nil
}

// ResendVerification re-issues the verification email. Only accounts that
// are still inactive and hold no live token qualify; anything else reports
// NotFound so the endpoint does not leak which emails are registered.
func (s *UserService) ResendVerification(ctx context.Context, email string) error {

	user, err := s.repomanager.Users(s.db).GetPendingVerification(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return common.ErrorInternal
	}

	return s.issueVerification(ctx, user)
}

// Login verifies the credentials and issues a session token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {

	if !ValidUsername(username) {
		return "", common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(password)); err != nil {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, []byte(s.config.SecretKey), s.config.SessionValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}

	return token, nil
}
