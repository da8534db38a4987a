// Package auth issues and validates the HS256 access tokens that carry the
// authenticated account id between requests.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

// Claims extends the registered JWT claims with the owning account id.
type Claims struct {
	jwt.RegisteredClaims
	AccountID int64 `json:"account_id"`
}

// GenerateToken mints a signed access token for accountID valid for
// validityDuration.
func GenerateToken(accountID int64, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		AccountID: accountID,
	})

	return token.SignedString(secretKey)
}

// GetAccountIDFromToken validates tokenString and extracts the account id.
// Expired tokens return common.ErrTokenExpired; any other failure returns
// common.ErrorInvalidToken.
func GetAccountIDFromToken(tokenString string, secretKey []byte) (int64, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, common.ErrorInvalidToken
		}
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrorInvalidToken
	}

	if !token.Valid || claims.AccountID == 0 {
		return 0, common.ErrorInvalidToken
	}

	return claims.AccountID, nil
}
