package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/recordkeeper/internal/common"
)

var testSecret = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, testSecret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	id, err := GetAccountIDFromToken(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
}

func TestGetAccountIDFromToken_WrongSecret(t *testing.T) {
	token, err := GenerateToken(42, testSecret, time.Minute)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(token, []byte("other-secret"))
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}

func TestGetAccountIDFromToken_Expired(t *testing.T) {
	token, err := GenerateToken(42, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = GetAccountIDFromToken(token, testSecret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestGetAccountIDFromToken_Garbage(t *testing.T) {
	_, err := GetAccountIDFromToken("not.a.token", testSecret)
	assert.ErrorIs(t, err, common.ErrorInvalidToken)
}
