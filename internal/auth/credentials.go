// Package auth holds user credentials, the signed session tokens bound to
// them, and the gate that authorizes a bearer token before any ledger
// operation runs.
package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/loan-ledger/internal/apperr"
	"github.com/iliyamo/loan-ledger/internal/model"
)

// UserStore is the persistence surface the credential store needs. The
// found flag distinguishes "no such user" from a storage failure.
type UserStore interface {
	Create(ctx context.Context, u model.User) error
	GetByEmail(ctx context.Context, email string) (model.User, bool, error)
	GetByID(ctx context.Context, id string) (model.User, bool, error)
}

// Credentials verifies and provisions user identities.
type Credentials struct {
	users UserStore
}

func NewCredentials(users UserStore) *Credentials {
	return &Credentials{users: users}
}

// Register provisions a user with a fresh salt and salted hash. Used for
// out-of-band bulk imports, so an email that already exists is a silent
// no-op rather than an error, including when a concurrent import wins the
// insert race.
func (c *Credentials) Register(ctx context.Context, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := model.ValidateEmail(email); err != nil {
		return err
	}
	if _, found, err := c.users.GetByEmail(ctx, email); err != nil {
		return err
	} else if found {
		return nil
	}

	salt, err := randomHex(saltBytes)
	if err != nil {
		return err
	}
	hash, err := hashPassword(password, salt)
	if err != nil {
		return err
	}
	err = c.users.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
	})
	if apperr.Is(err, apperr.KindConflict) {
		return nil
	}
	return err
}

// Verify checks email/password and returns the user ID. Unknown email and
// wrong password collapse to one failure message so callers cannot probe
// which accounts exist.
func (c *Credentials) Verify(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, found, err := c.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if !found || !verifyPassword(password, u.Salt, u.PasswordHash) {
		return "", apperr.New(apperr.KindAuthenticationFailed, "User '%s' login failed", email)
	}
	return u.ID, nil
}
