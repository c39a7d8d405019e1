package auth

import (
	"context"

	"github.com/iliyamo/loan-ledger/internal/apperr"
)

// Gate is the single checkpoint in front of the ledger: it validates the
// bearer token and then confirms the identity it names still exists.
type Gate struct {
	tokens *Tokens
	users  UserStore
}

func NewGate(tokens *Tokens, users UserStore) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Authorize resolves a raw bearer token to a user ID. A structurally valid
// token whose user is gone fails with Unauthorized, distinct from the
// token-level failures returned by Validate.
func (g *Gate) Authorize(ctx context.Context, raw string) (string, error) {
	userID, err := g.tokens.Validate(raw)
	if err != nil {
		return "", err
	}
	_, found, err := g.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if !found {
		return "", apperr.New(apperr.KindUnauthorized, "User is not authorized")
	}
	return userID, nil
}
