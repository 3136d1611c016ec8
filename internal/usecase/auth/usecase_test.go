package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	domain "loan-tracker/internal/domain/user"
	"loan-tracker/internal/testutil/usermock"
)

const secret = "test-secret"

// memAccounts backs usermock.Accounts with a map keyed by email.
func memAccounts() (*usermock.Accounts, map[string]*domain.Account) {
	byEmail := map[string]*domain.Account{}
	return &usermock.Accounts{
		CreateFn: func(_ context.Context, a *domain.Account) error {
			if _, ok := byEmail[a.Email]; ok {
				return domain.ErrEmailTaken
			}
			byEmail[a.Email] = a
			return nil
		},
		GetByEmailFn: func(_ context.Context, email string) (*domain.Account, error) {
			if a, ok := byEmail[email]; ok {
				return a, nil
			}
			return nil, domain.ErrNotFound
		},
		GetByUserIDFn: func(_ context.Context, userID string) (*domain.Account, error) {
			for _, a := range byEmail {
				if a.UserID == userID {
					return a, nil
				}
			}
			return nil, domain.ErrNotFound
		},
	}, byEmail
}

func signUpInput() SignUpInput {
	return SignUpInput{
		Email:       "  Ada@Example.com ",
		Password:    "correct-horse",
		FirstName:   "Ada",
		LastName:    "Obi",
		DateOfBirth: time.Date(1990, 5, 17, 0, 0, 0, 0, time.UTC),
		PhoneNumber: "+2348000000000",
		Occupation:  "Engineer",
		Address:     "12 Marina, Lagos",
		NationalID:  "NIN123",
		BVN:         "22222222222",
	}
}

func TestSignUp_CreatesAccountAndProfile(t *testing.T) {
	accounts, store := memAccounts()
	var profile *domain.Profile
	profiles := &usermock.Profiles{CreateFn: func(_ context.Context, p *domain.Profile) error {
		profile = p
		return nil
	}}
	uc := NewUsecase(accounts, profiles, usermock.NewSessions(), NewTokens(secret, time.Hour))

	u, err := uc.SignUp(context.Background(), signUpInput())
	if err != nil {
		t.Fatalf("SignUp err: %v", err)
	}
	if u.Email != "ada@example.com" || len(u.UserID) != 32 {
		t.Fatalf("unexpected user: %+v", u)
	}
	acc := store["ada@example.com"]
	if acc == nil || acc.PasswordHash == "" || acc.PasswordHash == "correct-horse" {
		t.Fatalf("account not stored with a hash: %+v", acc)
	}
	if profile == nil || profile.UserID != u.UserID || profile.NationalID != "NIN123" || profile.Occupation != "Engineer" {
		t.Fatalf("profile mismatch: %+v", profile)
	}
}

func TestSignUp_Rejects(t *testing.T) {
	accounts, _ := memAccounts()
	uc := NewUsecase(accounts, &usermock.Profiles{}, usermock.NewSessions(), NewTokens(secret, time.Hour))

	bad := signUpInput()
	bad.Email = "not-an-email"
	if _, err := uc.SignUp(context.Background(), bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("bad email: want ErrInvalidInput, got %v", err)
	}
	short := signUpInput()
	short.Password = "short"
	if _, err := uc.SignUp(context.Background(), short); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("short password: want ErrInvalidInput, got %v", err)
	}

	if _, err := uc.SignUp(context.Background(), signUpInput()); err != nil {
		t.Fatalf("first SignUp: %v", err)
	}
	if _, err := uc.SignUp(context.Background(), signUpInput()); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("duplicate: want ErrEmailTaken, got %v", err)
	}
}

func TestSignUp_RejectsPasswordOverBcryptLimit(t *testing.T) {
	accounts, store := memAccounts()
	uc := NewUsecase(accounts, &usermock.Profiles{}, usermock.NewSessions(), NewTokens(secret, time.Hour))

	in := signUpInput()
	in.Password = strings.Repeat("é", 40) // 40 runes, 80 bytes
	if _, err := uc.SignUp(context.Background(), in); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("want ErrInvalidInput, got %v", err)
	}
	if len(store) != 0 {
		t.Fatalf("no account should be created, got %d", len(store))
	}

	in.Password = strings.Repeat("é", 36) // exactly 72 bytes
	if _, err := uc.SignUp(context.Background(), in); err != nil {
		t.Fatalf("72-byte password: %v", err)
	}
}

func TestSignUp_ProfileFailureKeepsAccount(t *testing.T) {
	accounts, store := memAccounts()
	profiles := &usermock.Profiles{CreateFn: func(context.Context, *domain.Profile) error {
		return errors.New("users insert failed")
	}}
	uc := NewUsecase(accounts, profiles, usermock.NewSessions(), NewTokens(secret, time.Hour))

	u, err := uc.SignUp(context.Background(), signUpInput())
	if !errors.Is(err, domain.ErrProfileWrite) {
		t.Fatalf("want ErrProfileWrite, got %v", err)
	}
	if u == nil || store["ada@example.com"] == nil {
		t.Fatalf("account must remain after profile failure")
	}
}

func TestSignIn_CurrentUser_SignOut(t *testing.T) {
	accounts, _ := memAccounts()
	sessions := usermock.NewSessions()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	uc := NewUsecase(accounts, &usermock.Profiles{}, sessions, NewTokens(secret, 2*time.Hour)).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}

	if _, err := uc.SignIn(ctx, "ada@example.com", "wrong-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password: want ErrInvalidCredentials, got %v", err)
	}
	if _, err := uc.SignIn(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown email: want ErrInvalidCredentials, got %v", err)
	}

	sess, err := uc.SignIn(ctx, "ADA@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if !sess.ExpiresAt.Equal(now.Add(2 * time.Hour)) {
		t.Fatalf("expires at %v", sess.ExpiresAt)
	}

	me, err := uc.CurrentUser(ctx, sess.Token)
	if err != nil || me.UserID != sess.User.UserID {
		t.Fatalf("CurrentUser = %+v, %v", me, err)
	}

	now = now.Add(30 * time.Minute)
	if err := uc.SignOut(ctx, sess.Token); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if len(sessions.Revoked) != 1 {
		t.Fatalf("revoked sessions = %d, want 1", len(sessions.Revoked))
	}
	for _, ttl := range sessions.Revoked {
		if ttl != 90*time.Minute {
			t.Fatalf("revocation ttl = %v, want 90m", ttl)
		}
	}
	if _, err := uc.CurrentUser(ctx, sess.Token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("after sign-out: want ErrInvalidToken, got %v", err)
	}
}

func TestCurrentUser_InvalidTokens(t *testing.T) {
	accounts, _ := memAccounts()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	uc := NewUsecase(accounts, &usermock.Profiles{}, usermock.NewSessions(), NewTokens(secret, time.Hour)).
		WithClock(func() time.Time { return now })
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	sess, err := uc.SignIn(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	other := NewUsecase(accounts, &usermock.Profiles{}, usermock.NewSessions(), NewTokens("other-secret", time.Hour)).
		WithClock(func() time.Time { return now })

	cases := map[string]func() error{
		"empty":        func() error { _, err := uc.CurrentUser(ctx, ""); return err },
		"garbage":      func() error { _, err := uc.CurrentUser(ctx, "not.a.jwt"); return err },
		"wrong secret": func() error { _, err := other.CurrentUser(ctx, sess.Token); return err },
		"expired": func() error {
			now = now.Add(2 * time.Hour)
			defer func() { now = now.Add(-2 * time.Hour) }()
			_, err := uc.CurrentUser(ctx, sess.Token)
			return err
		},
	}
	for name, call := range cases {
		t.Run(name, func(t *testing.T) {
			if err := call(); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("want ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestCurrentUser_StoreError(t *testing.T) {
	accounts, _ := memAccounts()
	sessions := usermock.NewSessions()
	uc := NewUsecase(accounts, &usermock.Profiles{}, sessions, NewTokens(secret, time.Hour))
	ctx := context.Background()

	if _, err := uc.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	sess, err := uc.SignIn(ctx, "ada@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	sessions.Err = errors.New("redis down")
	if _, err := uc.CurrentUser(ctx, sess.Token); err == nil || errors.Is(err, ErrInvalidToken) {
		t.Fatalf("want store error, got %v", err)
	}
}
