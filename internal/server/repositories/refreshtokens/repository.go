// Package refreshtokens persists the server-stored refresh tokens backing
// the authentication flow.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
)

// Repository stores refresh tokens. Find returns common.ErrorNotFound for
// unknown tokens. Delete consumes exactly one token: it returns
// common.ErrorNotFound when the token is absent, so a token spent by a
// concurrent caller cannot be spent twice. DeleteByAccount removes every
// token of an account; it is used when the account itself goes away or
// changes its password.
type Repository interface {
	Create(ctx context.Context, accountID int64, token string, validity time.Duration) error
	Find(ctx context.Context, token string) (*models.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByAccount(ctx context.Context, accountID int64) error
}
