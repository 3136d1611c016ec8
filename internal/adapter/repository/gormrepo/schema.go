package gormrepo

import (
	loanDomain "loan-tracker/internal/domain/loan"
	paymentDomain "loan-tracker/internal/domain/payment"
	userDomain "loan-tracker/internal/domain/user"

	"gorm.io/gorm"
)

// AutoMigrate creates the tables from the domain models. Used for sqlite;
// mysql and postgres schemas come from cmd/migrate.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&loanDomain.Loan{},
		&paymentDomain.Payment{},
		&userDomain.Account{},
		&userDomain.Profile{},
	)
}
