package gormrepo

import (
	"context"
	"errors"

	userDomain "loan-tracker/internal/domain/user"

	"gorm.io/gorm"
)

type AccountRepository struct{ db *gorm.DB }

func NewAccountRepository(db *gorm.DB) *AccountRepository { return &AccountRepository{db: db} }

func (r *AccountRepository) Create(ctx context.Context, a *userDomain.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return userDomain.ErrEmailTaken
	}
	return err
}

// GetByEmail ignores case and surrounding spaces.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*userDomain.Account, error) {
	var out userDomain.Account
	res := r.db.WithContext(ctx).
		Where("LOWER(TRIM(email)) = LOWER(TRIM(?))", email).
		First(&out)
	return accountOrNotFound(&out, res.Error)
}

func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*userDomain.Account, error) {
	var out userDomain.Account
	res := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out)
	return accountOrNotFound(&out, res.Error)
}

func accountOrNotFound(a *userDomain.Account, err error) (*userDomain.Account, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, userDomain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

type ProfileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) *ProfileRepository { return &ProfileRepository{db: db} }

func (r *ProfileRepository) Create(ctx context.Context, p *userDomain.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}
