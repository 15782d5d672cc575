package services

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/services/repositories"
	"github.com/prophesy-fun/prophesy_api/shared"
)

const testAppID = "test-app-id"

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := openSqlite(filepath.Join(t.TempDir(), "services.db"))
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// seedTwitterUser stores a user with a linked twitter account.
func seedTwitterUser(t *testing.T, db *gorm.DB, userID, twitterID string) *model.User {
	t.Helper()
	user, err := repositories.NewUserRepository(db).UpsertUser(context.Background(), dto.CreateUserRequest{
		ID:       userID,
		AuthType: shared.AuthTypeTwitter,
		Twitter:  &dto.TwitterProfile{Subject: twitterID, Username: "user_" + twitterID},
	})
	require.NoError(t, err)
	return user
}

func seedWalletUser(t *testing.T, db *gorm.DB, userID, address string) *model.User {
	t.Helper()
	user, err := repositories.NewUserRepository(db).UpsertUser(context.Background(), dto.CreateUserRequest{
		ID:       userID,
		AuthType: shared.AuthTypeWallet,
		Wallets:  []dto.WalletInput{{Address: address, WalletType: "wallet"}},
	})
	require.NoError(t, err)
	return user
}

type testSigner struct {
	key *ecdsa.PrivateKey
}

func newTestSigner(t *testing.T) *testSigner {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return &testSigner{key: key}
}

func (s *testSigner) verifier() *JWTService {
	return NewJWTService(testAppID, &s.key.PublicKey)
}

func (s *testSigner) sign(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodES256, claims).SignedString(s.key)
	require.NoError(t, err)
	return token
}

// token returns a valid access token for userID.
func (s *testSigner) token(t *testing.T, userID string) string {
	return s.sign(t, validClaims(userID))
}

func validClaims(userID string) jwt.RegisteredClaims {
	now := time.Now()
	return jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    PrivyIssuer,
		Audience:  jwt.ClaimStrings{testAppID},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
	}
}
