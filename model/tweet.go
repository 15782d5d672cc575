package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Tweet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text;index:idx_tweets_feed,priority:2"`
	Content   string    `json:"content" gorm:"not null;size:280"`
	UserID    string    `json:"user_id" gorm:"index;not null;type:text"`
	User      *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;index:idx_tweets_feed,priority:1"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null"`
}

// BeforeCreate pins the sort key: ids are time ordered and created_at is UTC
// truncated to microseconds so every store compares it the same way.
func (t *Tweet) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return err
		}
		t.ID = id.String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	t.CreatedAt = t.CreatedAt.UTC().Truncate(time.Microsecond)
	t.UpdatedAt = t.CreatedAt
	return nil
}

func (t Tweet) PageID() string {
	return t.ID
}
