package models

import "time"

// RegistrationToken is a one-time email verification token. It is deleted
// when consumed and only regenerated while the account is still inactive.
type RegistrationToken struct {
	UserID  int64
	Token   string
	Expires time.Time
}
