package seeders

import (
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MainSeeder coordinates all seeding operations
type MainSeeder struct {
	db *gorm.DB
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{db: db}
}

// SeedAll runs all seeders in the correct order
func (s *MainSeeder) SeedAll() error {
	log.Info("Starting database seeding...")

	// 1. Users, twitter accounts and wallets
	if err := NewUserSeeder(s.db).SeedUsers(); err != nil {
		log.WithError(err).Error("User seeding failed")
		return err
	}

	// 2. Tweets (depend on users with twitter accounts)
	if err := NewTweetSeeder(s.db).SeedTweets(); err != nil {
		log.WithError(err).Error("Tweet seeding failed")
		return err
	}

	log.Info("Database seeding completed successfully!")
	return nil
}

func (s *MainSeeder) SeedUsersOnly() error {
	return NewUserSeeder(s.db).SeedUsers()
}

func (s *MainSeeder) SeedTweetsOnly() error {
	return NewTweetSeeder(s.db).SeedTweets()
}
