package domain

import "time"

// User is the durable account record. Secrets and verification internals are
// never serialized.
type User struct {
	ID                        string     `json:"id"`
	Name                      string     `json:"name"`
	Email                     string     `json:"email"`
	PasswordHash              string     `json:"-"`
	ProfileImage              string     `json:"profile_image,omitempty"`
	Verified                  bool       `json:"verified"`
	VerificationCode          string     `json:"-"`
	VerificationCodeExpiresAt *time.Time `json:"-"`
	CreatedAt                 time.Time  `json:"created_at"`
	UpdatedAt                 time.Time  `json:"updated_at"`
}

// Public returns a projection safe to hand to callers: no password hash, no
// outstanding verification code.
func (u User) Public() User {
	u.PasswordHash = ""
	u.VerificationCode = ""
	u.VerificationCodeExpiresAt = nil
	return u
}

// HasActiveCode reports whether an unexpired verification code is outstanding.
// Expired codes are treated as absent; nothing sweeps them.
func (u User) HasActiveCode(now time.Time) bool {
	if u.VerificationCode == "" || u.VerificationCodeExpiresAt == nil {
		return false
	}
	return !now.After(*u.VerificationCodeExpiresAt)
}
