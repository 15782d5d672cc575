package dto

import "time"

type TwitterFollowersRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	AccessToken string `json:"access_token" validate:"required,not_blank"`
}

func (r TwitterFollowersRequest) Validate() error {
	return validateStruct(r)
}

type TwitterFollowersResponse struct {
	FollowersCount int        `json:"followers_count"`
	FollowingCount int        `json:"following_count"`
	TweetCount     int        `json:"tweet_count"`
	ListedCount    int        `json:"listed_count"`
	LikeCount      int        `json:"like_count"`
	MediaCount     int        `json:"media_count"`
	LastFetched    *time.Time `json:"last_fetched"`
}

// TwitterPublicMetrics is the public_metrics object of a v2 user lookup.
type TwitterPublicMetrics struct {
	FollowersCount int `json:"followers_count"`
	FollowingCount int `json:"following_count"`
	TweetCount     int `json:"tweet_count"`
	ListedCount    int `json:"listed_count"`
	LikeCount      int `json:"like_count"`
	MediaCount     int `json:"media_count"`
}

type TwitterUserLookup struct {
	Data *struct {
		ID            string                `json:"id"`
		Username      string                `json:"username"`
		PublicMetrics *TwitterPublicMetrics `json:"public_metrics"`
	} `json:"data"`
}
