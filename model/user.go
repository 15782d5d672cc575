package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is keyed by the identity provider's DID.
type User struct {
	ID        string          `json:"id" gorm:"primaryKey;type:text"`
	AuthType  string          `json:"auth_type" gorm:"not null;size:50"`
	Twitter   *TwitterAccount `json:"twitter,omitempty" gorm:"foreignKey:UserID"`
	Wallets   []Wallet        `json:"wallets" gorm:"foreignKey:UserID"`
	CreatedAt time.Time       `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time       `json:"updated_at" gorm:"not null"`
}

type TwitterAccount struct {
	ID                string     `json:"id" gorm:"primaryKey;type:text"`
	UserID            string     `json:"user_id" gorm:"uniqueIndex;not null;type:text"`
	TwitterID         string     `json:"twitter_id" gorm:"uniqueIndex;not null;size:64"`
	Username          string     `json:"username" gorm:"not null;size:64"`
	Name              string     `json:"name" gorm:"size:128"`
	ProfilePictureURL string     `json:"profile_picture_url" gorm:"type:text"`
	FirstVerifiedAt   *time.Time `json:"first_verified_at,omitempty"`
	LatestVerifiedAt  *time.Time `json:"latest_verified_at,omitempty"`

	FollowersCount   int        `json:"followers_count" gorm:"default:0;not null"`
	FollowingCount   int        `json:"following_count" gorm:"default:0;not null"`
	TweetCount       int        `json:"tweet_count" gorm:"default:0;not null"`
	ListedCount      int        `json:"listed_count" gorm:"default:0;not null"`
	LikeCount        int        `json:"like_count" gorm:"default:0;not null"`
	MediaCount       int        `json:"media_count" gorm:"default:0;not null"`
	LastMetricsFetch *time.Time `json:"last_metrics_fetch,omitempty"`

	CreatedAt time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

type Wallet struct {
	ID               string    `json:"id" gorm:"primaryKey;type:text"`
	UserID           string    `json:"user_id" gorm:"index;not null;type:text"`
	Address          string    `json:"address" gorm:"uniqueIndex;not null;size:128"`
	WalletType       string    `json:"wallet_type" gorm:"not null;size:50"`
	WalletClientType string    `json:"wallet_client_type" gorm:"size:50"`
	CreatedAt        time.Time `json:"created_at" gorm:"not null"`
	UpdatedAt        time.Time `json:"updated_at" gorm:"not null"`
}

func (a *TwitterAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	a.ID = id.String()
	return nil
}

func (w *Wallet) BeforeCreate(tx *gorm.DB) error {
	if w.ID != "" {
		return nil
	}
	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	w.ID = id.String()
	return nil
}
