package handlers

import (
	"context"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/pagination"
)

type TweetServiceInterface interface {
	GetTweets(ctx context.Context, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error)
	GetUserTweets(ctx context.Context, userID string, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error)
	CreateTweet(ctx context.Context, callerID string, req dto.CreateTweetRequest) (*model.Tweet, error)
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, callerID string, req dto.CreateUserRequest) (*model.User, error)
	SyncUser(ctx context.Context, callerID string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type TwitterServiceInterface interface {
	GetFollowers(ctx context.Context, callerID string, req dto.TwitterFollowersRequest) (*dto.TwitterFollowersResponse, error)
}
