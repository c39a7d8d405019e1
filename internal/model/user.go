package model

import (
	"strings"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// User mirrors the `users` table. The password is stored as an argon2id
// hash next to its random salt; the plaintext never leaves the credential
// store. Users are provisioned out of band and never updated afterwards.
type User struct {
	ID           string // users.id (UUID)
	Email        string // users.email (unique)
	PasswordHash string // users.password_hash (hex)
	Salt         string // users.salt (hex)
}

// ValidateEmail enforces the two rules a user record has: the field is
// required and must look like an address.
func ValidateEmail(email string) error {
	if email == "" {
		return apperr.New(apperr.KindInvalidInput, "'email' field required")
	}
	if !strings.Contains(email, "@") {
		return apperr.New(apperr.KindInvalidInput, "Invalid email address provided")
	}
	return nil
}
