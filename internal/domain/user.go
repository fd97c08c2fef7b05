package domain

import "time"

// User is the identity record. The password hash and the mirrored refresh
// token never leave the service layer; handlers expose SafeUser views only.
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	Username           string     `json:"username"`
	PasswordHash       string     `json:"-"`
	Verified           bool       `json:"verified"`
	VerificationToken  *string    `json:"-"`
	VerificationExpiry *time.Time `json:"-"`
	RefreshToken       *string    `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,username"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}
