package seeders

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/model"
)

// TweetSeeder gives every user with a twitter account a short history of
// tweets spread over the last day.
type TweetSeeder struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTweetSeeder(db *gorm.DB) *TweetSeeder {
	return &TweetSeeder{db: db, now: time.Now}
}

var demoTweets = []string{
	"gm. Calling it now: ETH flips its all time high before the end of the quarter.",
	"Prediction: the next big L2 launch will be a consumer app, not a chain.",
	"Markets are just prophecies with a price tag.",
	"Bookmark this one. Onchain social overtakes legacy social for crypto news within a year.",
	"Two weeks. That is all I am saying.",
}

func (s *TweetSeeder) SeedTweets() error {
	var accounts []model.TwitterAccount
	if err := s.db.Find(&accounts).Error; err != nil {
		return err
	}

	for _, account := range accounts {
		var count int64
		if err := s.db.Model(&model.Tweet{}).Where("user_id = ?", account.UserID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			log.WithField("user_id", account.UserID).Info("Tweets already exist, skipping")
			continue
		}

		start := s.now().Add(-24 * time.Hour)
		for i, content := range demoTweets {
			tweet := model.Tweet{
				Content:   content,
				UserID:    account.UserID,
				CreatedAt: start.Add(time.Duration(i) * time.Hour),
			}
			if err := s.db.Create(&tweet).Error; err != nil {
				log.WithError(err).WithField("user_id", account.UserID).Error("Error creating tweet")
				return err
			}
		}
		log.WithFields(log.Fields{
			"user_id": account.UserID,
			"tweets":  len(demoTweets),
		}).Info("Created tweets")
	}

	log.Info("Tweet seeding completed successfully")
	return nil
}
