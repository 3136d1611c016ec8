package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("user not found")
	ErrEmailTaken   = errors.New("user with this email already exists")
	ErrProfileWrite = errors.New("account created but failed to save details")
)

// Account is the credential record owned by the auth subsystem.
type Account struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	UserID       string    `gorm:"column:user_id;size:32;uniqueIndex:ux_accounts_user_id"`
	Email        string    `gorm:"column:email;size:255;not null;uniqueIndex:ux_accounts_email"`
	PasswordHash string    `gorm:"column:password_hash;size:100;not null"`
	FirstName    string    `gorm:"column:first_name;size:100"`
	LastName     string    `gorm:"column:last_name;size:100"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Account) TableName() string { return "accounts" }

// Profile is the borrower detail row in the users table, written once at sign-up.
type Profile struct {
	ID          uint64    `gorm:"primaryKey;column:id" json:"-"`
	UserID      string    `gorm:"column:user_id;size:32;uniqueIndex:ux_users_user_id" json:"user_id"`
	FirstName   string    `gorm:"column:first_name;size:100" json:"first_name"`
	LastName    string    `gorm:"column:last_name;size:100" json:"last_name"`
	Email       string    `gorm:"column:email;size:255" json:"email"`
	DateOfBirth time.Time `gorm:"column:date_of_birth;type:date" json:"date_of_birth"`
	PhoneNumber string    `gorm:"column:phone_number;size:32" json:"phone_number"`
	Occupation  string    `gorm:"column:occupation;size:100" json:"occupation"`
	Address     string    `gorm:"column:address;type:text" json:"address"`
	NationalID  string    `gorm:"column:national_id;size:32" json:"national_id"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Profile) TableName() string { return "users" }
