// Package services contains server-side business logic. This file
// implements AccountService: registration, login, password change, account
// deletion, and token issuing/refreshing.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
	"github.com/dmitrijs2005/recordkeeper/internal/dbx"
	"github.com/dmitrijs2005/recordkeeper/internal/password"
	"github.com/dmitrijs2005/recordkeeper/internal/server/auth"
	"github.com/dmitrijs2005/recordkeeper/internal/server/config"
	"github.com/dmitrijs2005/recordkeeper/internal/server/models"
	"github.com/dmitrijs2005/recordkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/recordkeeper/internal/validate"
)

// dummyHash is verified against when a login names an unknown username, so
// that the miss costs roughly the same as a wrong password. Hash of an
// unguessable throwaway string.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// TokenPair bundles a short-lived access token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AccountService owns the account lifecycle. Uniqueness pre-checks run
// here; the repository's atomic check (store mutex or unique constraint)
// is the backstop against concurrent registrations. Multi-statement
// mutations rebind the repositories to one transaction in the Postgres
// mode.
type AccountService struct {
	db                           *sql.DB
	manager                      repomanager.RepositoryManager
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

func NewAccountService(m repomanager.RepositoryManager, cfg *config.Config) *AccountService {
	return &AccountService{
		db:                           m.Conn(),
		manager:                      m,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// withTx runs fn inside a database transaction in the Postgres mode. The
// in-memory stores guard their own state, so fn runs against them directly.
func (s *AccountService) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.db, nil, fn)
}

// Register creates an account. Username uniqueness is checked before email
// uniqueness; both are checked before validation, and nothing is written
// unless every check passes. Password strength is advisory and not
// enforced here.
func (s *AccountService) Register(ctx context.Context, username, email, plaintext string) (*models.Account, error) {
	accounts := s.manager.Accounts(s.db)

	if _, err := accounts.GetByUsername(ctx, username); err == nil {
		return nil, common.ErrorDuplicateUsername
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking username: %w", err)
	}

	if _, err := accounts.GetByEmail(ctx, email); err == nil {
		return nil, common.ErrorDuplicateEmail
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("error checking email: %w", err)
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if !validate.Account(username, email, hash) {
		return nil, common.ErrorInvalidInput
	}

	acc, err := accounts.Create(ctx, &models.Account{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) || errors.Is(err, common.ErrorDuplicateEmail) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating account: %w", err)
	}
	return acc, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// An unknown username and a wrong password are indistinguishable: both
// return common.ErrorUnauthorized.
func (s *AccountService) Login(ctx context.Context, username, plaintext string) (*TokenPair, error) {
	acc, err := s.manager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// burn comparable time so the miss is not observable
			password.Verify(plaintext, dummyHash)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !password.Verify(plaintext, acc.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	return s.generateTokenPair(ctx, acc.ID, s.db)
}

// Refresh validates a refresh token, rotates it, and returns a fresh
// TokenPair. Expired tokens yield ErrRefreshTokenExpired. Consuming the
// old token and issuing the new one happen in one transaction, and a token
// already consumed by a concurrent refresh yields ErrorUnauthorized: each
// refresh token is spent at most once.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	token, err := s.manager.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	if token.Expires.Before(time.Now()) {
		return nil, common.ErrRefreshTokenExpired
	}

	var pair *TokenPair
	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.manager.RefreshTokens(tx).Delete(ctx, refreshToken); err != nil {
			if errors.Is(err, common.ErrorNotFound) {
				return common.ErrorUnauthorized
			}
			return common.ErrorInternal
		}
		var genErr error
		pair, genErr = s.generateTokenPair(ctx, token.AccountID, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return pair, nil
}

// Logout discards a refresh token. Unknown tokens are a no-op.
func (s *AccountService) Logout(ctx context.Context, refreshToken string) error {
	err := s.manager.RefreshTokens(s.db).Delete(ctx, refreshToken)
	if errors.Is(err, common.ErrorNotFound) {
		return nil
	}
	return err
}

// ChangePassword re-hashes and replaces the password after verifying the
// current one. Every live session of the account is invalidated; the hash
// swap and the session purge commit together.
func (s *AccountService) ChangePassword(ctx context.Context, username, oldPlaintext, newPlaintext string) (*models.Account, error) {
	acc, err := s.manager.Accounts(s.db).GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if !password.Verify(oldPlaintext, acc.PasswordHash) {
		return nil, common.ErrorUnauthorized
	}

	hash, err := password.Hash(newPlaintext)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	if !validate.Account(acc.Username, acc.Email, hash) {
		return nil, common.ErrorInvalidInput
	}

	var updated *models.Account
	err = s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		var txErr error
		updated, txErr = s.manager.Accounts(tx).UpdatePasswordHash(ctx, acc.ID, hash)
		if txErr != nil {
			return fmt.Errorf("error updating password: %w", txErr)
		}
		if txErr := s.manager.RefreshTokens(tx).DeleteByAccount(ctx, acc.ID); txErr != nil {
			return fmt.Errorf("error invalidating sessions: %w", txErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteAccount removes an account together with everything it owns:
// managed records and live sessions go with it (cascade policy). The
// three deletes commit as one transaction.
func (s *AccountService) DeleteAccount(ctx context.Context, id int64) (*models.Account, error) {
	if _, err := s.manager.Accounts(s.db).GetByID(ctx, id); err != nil {
		return nil, err
	}

	var deleted *models.Account
	err := s.withTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		if txErr := s.manager.Records(tx).DeleteByOwner(ctx, id); txErr != nil {
			return fmt.Errorf("error deleting owned records: %w", txErr)
		}
		if txErr := s.manager.RefreshTokens(tx).DeleteByAccount(ctx, id); txErr != nil {
			return fmt.Errorf("error deleting sessions: %w", txErr)
		}
		var txErr error
		deleted, txErr = s.manager.Accounts(tx).Delete(ctx, id)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// FindByUsername looks an account up by username.
func (s *AccountService) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	return s.manager.Accounts(s.db).GetByUsername(ctx, username)
}

// GetByID looks an account up by id.
func (s *AccountService) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	return s.manager.Accounts(s.db).GetByID(ctx, id)
}

func (s *AccountService) generateTokenPair(ctx context.Context, accountID int64, db dbx.DBTX) (*TokenPair, error) {
	access, err := auth.GenerateToken(accountID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refresh, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	if err := s.manager.RefreshTokens(db).Create(ctx, accountID, refresh, s.refreshTokenValidityDuration); err != nil {
		return nil, common.ErrorInternal
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
