package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/pagination"
)

// tweetPreloads attaches the author and their twitter profile to every
// tweet returned.
var tweetPreloads = []string{"User", "User.Twitter"}

type TweetRepository struct {
	BaseRepository
}

func NewTweetRepository(db *gorm.DB) *TweetRepository {
	return &TweetRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

// Feed pages every tweet, newest first.
func (r *TweetRepository) Feed(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error) {
	src := pagination.NewGormSource[model.Tweet](r.db, nil, tweetPreloads...)
	return pagination.Paginate[model.Tweet](ctx, src, req)
}

// ByUser pages one author's tweets, newest first.
func (r *TweetRepository) ByUser(ctx context.Context, userID string, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error) {
	byAuthor := func(tx *gorm.DB) *gorm.DB {
		return tx.Where("user_id = ?", userID)
	}
	src := pagination.NewGormSource[model.Tweet](r.db, byAuthor, tweetPreloads...)
	return pagination.Paginate[model.Tweet](ctx, src, req)
}

func (r *TweetRepository) Create(ctx context.Context, tweet *model.Tweet) (*model.Tweet, error) {
	if err := r.db.WithContext(ctx).Create(tweet).Error; err != nil {
		return nil, HandleError(err, "Failed to create tweet")
	}

	var created model.Tweet
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Twitter").
		Where("id = ?", tweet.ID).
		Take(&created).Error
	if err != nil {
		return nil, HandleError(err, "Failed to create tweet")
	}
	return &created, nil
}
