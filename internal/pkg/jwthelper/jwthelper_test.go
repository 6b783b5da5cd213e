package jwthelper

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKey = []byte("test-key")

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(testKey, 7, "alice", "CUSTOMER", time.Hour)
	require.NoError(t, err)

	claims, err := ParseToken(testKey, token)
	require.NoError(t, err)

	assert.Equal(t, "CUSTOMER", claims.Role)
	assert.Equal(t, "alice", claims.Name)

	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
}

func TestClaimsUseNamespacedKeys(t *testing.T) {
	token, err := GenerateToken(testKey, 1, "bob", "ADMIN", time.Hour)
	require.NoError(t, err)

	mapClaims := jwt.MapClaims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, mapClaims)
	require.NoError(t, err)

	assert.Equal(t, "ADMIN", mapClaims[RoleClaim])
	assert.Equal(t, "bob", mapClaims[NameClaim])
	assert.Equal(t, "1", mapClaims["sub"])
}

func TestParseToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(testKey, 1, "bob", "ADMIN", time.Hour)
	require.NoError(t, err)

	expired, err := GenerateToken(testKey, 1, "bob", "ADMIN", -time.Minute)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1"}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		key   []byte
		token string
	}{
		{name: "wrong key", key: []byte("other"), token: valid},
		{name: "expired", key: testKey, token: expired},
		{name: "alg none", key: testKey, token: none},
		{name: "garbage", key: testKey, token: "a.b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.key, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestClaims_UserIDRejectsBadSubject(t *testing.T) {
	_, err := (&Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "abc"}}).UserID()
	assert.ErrorIs(t, err, ErrInvalidSubject)
}
