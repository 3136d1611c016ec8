package auth

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
)

type SignUpInput struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	DateOfBirth time.Time
	PhoneNumber string
	Occupation  string
	Address     string
	NationalID  string
	// BVN is accepted on the form but never persisted.
	BVN string
}

type User struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      User      `json:"user"`
}
