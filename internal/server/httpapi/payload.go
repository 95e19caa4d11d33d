package httpapi

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type loginRequest struct {
	Username string `json:"username" validate:"required,alphanum"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// verifyRequest serves both verification and resend: exactly one of the two
// fields is expected.
type verifyRequest struct {
	Email            string `json:"email" validate:"omitempty,email"`
	VerificationCode string `json:"verificationCode" validate:"omitempty,alphanum"`
}

// apiRequest is the multiplexed request body of POST /api. Username and
// Message are only meaningful for some endpoints.
type apiRequest struct {
	Endpoint string `json:"endpoint" validate:"required"`
	Username string `json:"username"`
	Message  string `json:"message"`
}

// registerForm mirrors the registration form fields of the original site.
type registerForm struct {
	Email           string `validate:"required,email"`
	Username        string `validate:"required,alphanum"`
	FirstName       string
	LastName        string
	PhoneNumber     string
	DOB             string
	Bio             string
	Location        string
	Privacy         string
	Password        string `validate:"required"`
	ConfirmPassword string `validate:"required,eqfield=Password"`
}
