package repositories

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/pagination"
	"github.com/prophesy-fun/prophesy_api/shared"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.TwitterAccount{}, &model.Wallet{}, &model.Tweet{}))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func twitterUser(id, subject string) dto.CreateUserRequest {
	verified := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	return dto.CreateUserRequest{
		ID:       id,
		AuthType: shared.AuthTypeTwitter,
		Twitter: &dto.TwitterProfile{
			Subject:          subject,
			Username:         "user_" + subject,
			Name:             "User " + subject,
			FirstVerifiedAt:  &verified,
			LatestVerifiedAt: &verified,
		},
		Wallets: []dto.WalletInput{
			{Address: "0x" + subject, WalletType: "wallet", WalletClientType: "privy"},
		},
	}
}

func TestUserRepository_UpsertCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	user, err := repo.UpsertUser(ctx, twitterUser("did:privy:1", "100"))
	require.NoError(t, err)
	require.NotNil(t, user.Twitter)
	assert.Equal(t, "100", user.Twitter.TwitterID)
	assert.Len(t, user.Wallets, 1)
	assert.NotEmpty(t, user.Wallets[0].ID)

	req := twitterUser("did:privy:1", "100")
	req.Twitter.Username = "renamed"
	req.Wallets = append(req.Wallets, dto.WalletInput{Address: "0xsmart", WalletType: "smart_wallet", WalletClientType: "kernel"})
	req.Wallets[0].WalletClientType = "metamask"

	user, err = repo.UpsertUser(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "renamed", user.Twitter.Username)
	require.Len(t, user.Wallets, 2)

	byAddress := map[string]model.Wallet{}
	for _, w := range user.Wallets {
		byAddress[w.Address] = w
	}
	assert.Equal(t, "metamask", byAddress["0x100"].WalletClientType)
	assert.Equal(t, "kernel", byAddress["0xsmart"].WalletClientType)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRepository_WalletOwnedByAnotherUser(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.UpsertUser(ctx, twitterUser("did:privy:1", "100"))
	require.NoError(t, err)

	req := dto.CreateUserRequest{
		ID:       "did:privy:2",
		AuthType: shared.AuthTypeWallet,
		Wallets:  []dto.WalletInput{{Address: "0x100", WalletType: "wallet"}},
	}
	_, err = repo.UpsertUser(ctx, req)
	assert.True(t, shared.IsKind(err, shared.KindConflict))

	// the whole upsert rolled back
	_, err = repo.GetUser(ctx, "did:privy:2")
	assert.True(t, shared.IsKind(err, shared.KindNotFound))
}

func TestUserRepository_DuplicateTwitterSubjectConflicts(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.UpsertUser(ctx, twitterUser("did:privy:1", "100"))
	require.NoError(t, err)

	req := twitterUser("did:privy:2", "100")
	req.Wallets = nil
	_, err = repo.UpsertUser(ctx, req)

	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindConflict, appErr.Kind)
	assert.Equal(t, 409, appErr.StatusCode)
}

func TestUserRepository_UpdateTwitterMetrics(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.UpsertUser(ctx, twitterUser("did:privy:1", "100"))
	require.NoError(t, err)

	account, err := repo.GetTwitterAccount(ctx, "did:privy:1")
	require.NoError(t, err)

	fetched := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	updated, err := repo.UpdateTwitterMetrics(ctx, account.ID, dto.TwitterPublicMetrics{
		FollowersCount: 10, FollowingCount: 2, TweetCount: 7,
	}, fetched)
	require.NoError(t, err)
	assert.Equal(t, 10, updated.FollowersCount)
	assert.Equal(t, 7, updated.TweetCount)
	require.NotNil(t, updated.LastMetricsFetch)
	assert.True(t, updated.LastMetricsFetch.Equal(fetched))

	_, err = repo.GetTwitterAccount(ctx, "did:privy:missing")
	assert.True(t, shared.IsKind(err, shared.KindNotFound))
}

func TestTweetRepository_PagesFeedAndAuthor(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	tweets := NewTweetRepository(db)

	for _, id := range []string{"1", "2"} {
		_, err := users.UpsertUser(ctx, twitterUser("did:privy:"+id, id))
		require.NoError(t, err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		author := "did:privy:1"
		if i%2 == 1 {
			author = "did:privy:2"
		}
		// pairs share a timestamp so the id tie-break is exercised
		_, err := tweets.Create(ctx, &model.Tweet{
			Content:   fmt.Sprintf("tweet %d", i),
			UserID:    author,
			CreatedAt: base.Add(time.Duration(i/2) * time.Second),
		})
		require.NoError(t, err)
	}

	var seen []string
	req := pagination.PageRequest{Limit: 3}
	for {
		page, err := tweets.Feed(ctx, req)
		require.NoError(t, err)
		for _, tw := range page.Items {
			require.NotNil(t, tw.User)
			require.NotNil(t, tw.User.Twitter)
			seen = append(seen, tw.ID)
		}
		if page.NextCursor == nil {
			break
		}
		req.Cursor = *page.NextCursor
	}
	assert.Len(t, seen, 7)
	assertUnique(t, seen)

	page, err := tweets.ByUser(ctx, "did:privy:2", pagination.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.Nil(t, page.NextCursor)
	for _, tw := range page.Items {
		assert.Equal(t, "did:privy:2", tw.UserID)
	}

	// a cursor from another author's collection is unknown here
	page, err = tweets.ByUser(ctx, "did:privy:2", pagination.PageRequest{Cursor: seen[0]})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextCursor)
}

func TestHandleError(t *testing.T) {
	assert.NoError(t, HandleError(nil, "x"))

	err := HandleError(gorm.ErrRecordNotFound, "x")
	assert.True(t, shared.IsKind(err, shared.KindNotFound))

	err = HandleError(gorm.ErrDuplicatedKey, "x")
	assert.True(t, shared.IsKind(err, shared.KindConflict))

	err = HandleError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_wallets_address"`), "x")
	assert.True(t, shared.IsKind(err, shared.KindConflict))

	cause := errors.New("connection reset by peer")
	err = HandleError(cause, "Failed to fetch tweets")
	appErr, ok := shared.GetAppError(err)
	require.True(t, ok)
	assert.Equal(t, shared.KindInternal, appErr.Kind)
	assert.Equal(t, "Failed to fetch tweets", appErr.Message)
	assert.ErrorIs(t, err, cause)

	already := shared.NewForbiddenError(nil, "no")
	assert.Same(t, already, HandleError(already, "x"))
}

func TestHandleError_LogLevels(t *testing.T) {
	hook := logtest.NewGlobal()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		log.SetLevel(level)
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	})

	tests := []struct {
		err   error
		level log.Level
	}{
		{gorm.ErrRecordNotFound, log.DebugLevel},
		{gorm.ErrDuplicatedKey, log.WarnLevel},
		{errors.New("connection reset by peer"), log.ErrorLevel},
	}
	for _, tt := range tests {
		hook.Reset()
		_ = HandleError(tt.err, "x")
		require.Len(t, hook.AllEntries(), 1, tt.err.Error())
		assert.Equal(t, tt.level, hook.LastEntry().Level, tt.err.Error())
	}
}

func assertUnique(t *testing.T, ids []string) {
	t.Helper()
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		_, dup := set[id]
		assert.False(t, dup, "duplicate id %s", id)
		set[id] = struct{}{}
	}
}
