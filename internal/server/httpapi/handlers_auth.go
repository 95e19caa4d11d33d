package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stevegmedia/voxceleris/internal/common"
	"github.com/stevegmedia/voxceleris/internal/server/services"
)

const maxUploadBytes = 32 << 20

// handleRegister accepts the multipart registration form, stores the
// optional profile photo, and creates the inactive account.
func (s *HTTPServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	form := registerForm{
		Email:           r.FormValue("email"),
		Username:        r.FormValue("username"),
		FirstName:       r.FormValue("firstName"),
		LastName:        r.FormValue("lastName"),
		PhoneNumber:     r.FormValue("phoneNumber"),
		DOB:             r.FormValue("dob"),
		Bio:             r.FormValue("bio"),
		Location:        r.FormValue("location"),
		Privacy:         r.FormValue("privacy"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirmPassword"),
	}

	if err := validate.Struct(form); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid registration details.")
		return
	}

	profilePhoto := ""
	file, header, err := r.FormFile("profilePhoto")
	if err == nil {
		defer file.Close()
		url, err := s.photos.Save(ctx, header.Filename, file)
		if err != nil {
			s.logger.Error(ctx, "profile photo upload failed", "error", err)
			writeError(w, http.StatusBadGateway, "Failed to upload profile photo.")
			return
		}
		profilePhoto = url
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "Invalid form data.")
		return
	}

	user, err := s.users.Register(ctx, services.RegisterParams{
		Email:        form.Email,
		Username:     form.Username,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Phone:        form.PhoneNumber,
		DOB:          form.DOB,
		Bio:          form.Bio,
		Location:     form.Location,
		Private:      form.Privacy == "private",
		Password:     form.Password,
		ProfilePhoto: profilePhoto,
	})
	if err != nil {
		if user != nil {
			// account exists but the activation mail did not go out;
			// /auth/verify can re-send it
			s.logger.Error(ctx, "activation email failed", "user_id", user.ID, "error", err)
			writeError(w, http.StatusBadGateway, "Failed to send activation email. Try again later.")
			return
		}
		writeServiceError(w, err)
		return
	}

	s.logger.Info(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	writeMessage(w, "Registration successful! Please check your email to verify your account.")
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	token, err := s.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		writeServiceError(w, err)
		return
	}

	writeData(w, loginResponse{Token: token})
}

// handleVerify serves both sides of account verification: consuming a
// verification code and re-sending the activation email.
func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body.")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid verification code")
		return
	}

	switch {
	case req.VerificationCode != "":
		if err := s.users.Verify(ctx, req.VerificationCode); err != nil {
			if errors.Is(err, common.ErrInvalidToken) {
				writeError(w, http.StatusBadRequest, "Either the verification code is invalid, expired or maybe the account is already active?")
				return
			}
			writeServiceError(w, err)
			return
		}
		writeMessage(w, "Account verified successfully")

	case req.Email != "":
		if err := s.users.ResendVerification(ctx, req.Email); err != nil {
			writeError(w, http.StatusBadRequest, "Failed to send email")
			return
		}
		writeMessage(w, "Email sent successfully")

	default:
		writeError(w, http.StatusBadRequest, "Email or verification code is required.")
	}
}
