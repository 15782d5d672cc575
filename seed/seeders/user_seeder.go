package seeders

import (
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/shared"
)

// UserSeeder creates demo users with linked twitter accounts and wallets.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) SeedUsers() error {
	for _, user := range s.getDemoUsers() {
		var existing model.User
		err := s.db.Where("id = ?", user.ID).Take(&existing).Error
		switch {
		case err == nil:
			log.WithField("user_id", user.ID).Info("User already exists, skipping")
			continue
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		// Create also inserts the twitter account and wallets.
		if err := s.db.Create(&user).Error; err != nil {
			log.WithError(err).WithField("user_id", user.ID).Error("Error creating user")
			return err
		}
		log.WithField("user_id", user.ID).Info("Created user")
	}

	log.Info("User seeding completed successfully")
	return nil
}

func (s *UserSeeder) getDemoUsers() []model.User {
	verified := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	return []model.User{
		{
			ID:       "did:privy:seedalice000000000000000",
			AuthType: shared.AuthTypeTwitter,
			Twitter: &model.TwitterAccount{
				TwitterID:         "1000000000000000001",
				Username:          "alice_prophet",
				Name:              "Alice",
				ProfilePictureURL: "https://pbs.twimg.com/profile_images/seed/alice_normal.jpg",
				FirstVerifiedAt:   &verified,
				LatestVerifiedAt:  &verified,
				FollowersCount:    1520,
				FollowingCount:    310,
				TweetCount:        4200,
			},
			Wallets: []model.Wallet{
				{Address: "0x1111111111111111111111111111111111111111", WalletType: "wallet", WalletClientType: "metamask"},
			},
		},
		{
			ID:       "did:privy:seedbob00000000000000000",
			AuthType: shared.AuthTypeTwitter,
			Twitter: &model.TwitterAccount{
				TwitterID:         "1000000000000000002",
				Username:          "bob_oracle",
				Name:              "Bob",
				ProfilePictureURL: "https://pbs.twimg.com/profile_images/seed/bob_normal.jpg",
				FirstVerifiedAt:   &verified,
				LatestVerifiedAt:  &verified,
				FollowersCount:    87,
				FollowingCount:    120,
				TweetCount:        530,
			},
			Wallets: []model.Wallet{
				{Address: "0x2222222222222222222222222222222222222222", WalletType: "wallet", WalletClientType: "coinbase_wallet"},
				{Address: "0x3333333333333333333333333333333333333333", WalletType: "smart_wallet", WalletClientType: "kernel"},
			},
		},
		{
			ID:       "did:privy:seedcarol0000000000000000",
			AuthType: shared.AuthTypeWallet,
			Wallets: []model.Wallet{
				{Address: "0x4444444444444444444444444444444444444444", WalletType: "wallet", WalletClientType: "rainbow"},
			},
		},
	}
}
