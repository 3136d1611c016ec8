package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"strings"
	"time"

	"loan-tracker/internal/domain/user"
	"loan-tracker/pkg/id"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLen = 8
	// bcrypt rejects longer input; counted in bytes, not runes
	maxPasswordBytes = 72
)

type Usecase struct {
	accounts user.AccountRepository
	profiles user.ProfileRepository
	sessions user.SessionStore
	tokens   *Tokens
	now      func() time.Time
}

func NewUsecase(accounts user.AccountRepository, profiles user.ProfileRepository, sessions user.SessionStore, tokens *Tokens) *Usecase {
	return &Usecase{accounts: accounts, profiles: profiles, sessions: sessions, tokens: tokens, now: time.Now}
}

// WithClock replaces the clock used for token issue and validation.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

// SignUp creates the credential account and then the borrower profile. When the
// profile write fails the account is kept and ErrProfileWrite is returned.
func (u *Usecase) SignUp(ctx context.Context, in SignUpInput) (*User, error) {
	email := normalizeEmail(in.Email)
	if _, err := mail.ParseAddress(email); err != nil || len(in.Password) < minPasswordLen || len(in.Password) > maxPasswordBytes {
		return nil, ErrInvalidInput
	}

	if _, err := u.accounts.GetByEmail(ctx, email); err == nil {
		return nil, user.ErrEmailTaken
	} else if !errors.Is(err, user.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	acc := &user.Account{
		UserID:       id.NewID32(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
	}
	if err := u.accounts.Create(ctx, acc); err != nil {
		return nil, err
	}

	profile := &user.Profile{
		UserID:      acc.UserID,
		FirstName:   acc.FirstName,
		LastName:    acc.LastName,
		Email:       email,
		DateOfBirth: in.DateOfBirth,
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Occupation:  strings.TrimSpace(in.Occupation),
		Address:     strings.TrimSpace(in.Address),
		NationalID:  strings.TrimSpace(in.NationalID),
	}
	if err := u.profiles.Create(ctx, profile); err != nil {
		log.Printf("auth: profile insert failed user=%s: %v", acc.UserID, err)
		return toUser(acc), user.ErrProfileWrite
	}

	return toUser(acc), nil
}

func (u *Usecase) SignIn(ctx context.Context, email, password string) (*Session, error) {
	acc, err := u.accounts.GetByEmail(ctx, normalizeEmail(email))
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, exp, err := u.tokens.issue(acc.UserID, acc.Email, u.now())
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: exp, User: *toUser(acc)}, nil
}

// SignOut revokes the token's session until the token would have expired anyway.
func (u *Usecase) SignOut(ctx context.Context, token string) error {
	now := u.now()
	c, err := u.tokens.parse(token, now)
	if err != nil {
		return err
	}
	ttl := c.ExpiresAt.Sub(now)
	if ttl <= 0 {
		return nil
	}
	return u.sessions.Revoke(ctx, c.ID, ttl)
}

// CurrentUser resolves a session token to its user. A missing, expired or
// revoked token yields ErrInvalidToken.
func (u *Usecase) CurrentUser(ctx context.Context, token string) (*User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	c, err := u.tokens.parse(token, u.now())
	if err != nil {
		return nil, err
	}

	revoked, err := u.sessions.IsRevoked(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrInvalidToken
	}

	acc, err := u.accounts.GetByUserID(ctx, c.Subject)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	return toUser(acc), nil
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func toUser(a *user.Account) *User {
	return &User{UserID: a.UserID, Email: a.Email, FirstName: a.FirstName, LastName: a.LastName}
}
