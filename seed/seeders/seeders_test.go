package seeders

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/prophesy-fun/prophesy_api/model"
)

func newSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "seed.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestSeedAll_Idempotent(t *testing.T) {
	db := newSeedDB(t)
	seeder := NewMainSeeder(db)

	require.NoError(t, seeder.SeedAll())
	require.NoError(t, seeder.SeedAll())

	var users, accounts, wallets, tweets int64
	require.NoError(t, db.Model(&model.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&model.TwitterAccount{}).Count(&accounts).Error)
	require.NoError(t, db.Model(&model.Wallet{}).Count(&wallets).Error)
	require.NoError(t, db.Model(&model.Tweet{}).Count(&tweets).Error)

	assert.EqualValues(t, 3, users)
	assert.EqualValues(t, 2, accounts)
	assert.EqualValues(t, 4, wallets)
	assert.EqualValues(t, 2*len(demoTweets), tweets)
}

func TestSeedTweets_OnlyTwitterUsers(t *testing.T) {
	db := newSeedDB(t)
	require.NoError(t, NewUserSeeder(db).SeedUsers())

	seeder := NewTweetSeeder(db)
	fixed := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	seeder.now = func() time.Time { return fixed }
	require.NoError(t, seeder.SeedTweets())

	var walletOnly int64
	require.NoError(t, db.Model(&model.Tweet{}).Where("user_id = ?", "did:privy:seedcarol0000000000000000").Count(&walletOnly).Error)
	assert.Zero(t, walletOnly)

	var newest model.Tweet
	require.NoError(t, db.Order("created_at DESC").Take(&newest).Error)
	assert.True(t, newest.CreatedAt.Equal(fixed.Add(-24*time.Hour).Add(time.Duration(len(demoTweets)-1)*time.Hour)))
}
