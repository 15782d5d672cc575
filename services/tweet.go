package services

import (
	ctx "context"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/pagination"
	"github.com/prophesy-fun/prophesy_api/services/repositories"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type TweetService struct {
	context.DefaultService

	tweetRepo *repositories.TweetRepository
	userRepo  *repositories.UserRepository
}

const TWEET_SVC = "tweet_svc"

func NewTweetService(db *gorm.DB) *TweetService {
	svc := &TweetService{}
	svc.initRepositories(db)
	return svc
}

func (svc TweetService) Id() string {
	return TWEET_SVC
}

func (svc *TweetService) Configure(c *context.Context) error {
	return svc.DefaultService.Configure(c)
}

func (svc *TweetService) Start() error {
	svc.initRepositories(svc.Service(DATABASE_SVC).(*DatabaseService).Db())
	return nil
}

func (svc *TweetService) initRepositories(db *gorm.DB) {
	svc.tweetRepo = repositories.NewTweetRepository(db)
	svc.userRepo = repositories.NewUserRepository(db)
}

func (svc *TweetService) GetTweets(c ctx.Context, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error) {
	return svc.tweetRepo.Feed(c, req)
}

func (svc *TweetService) GetUserTweets(c ctx.Context, userID string, req pagination.PageRequest) (pagination.PageResult[model.Tweet], error) {
	return svc.tweetRepo.ByUser(c, userID, req)
}

// CreateTweet posts on behalf of the caller, who must own a twitter account.
func (svc *TweetService) CreateTweet(c ctx.Context, callerID string, req dto.CreateTweetRequest) (*model.Tweet, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.UserID != callerID {
		return nil, shared.NewForbiddenError(nil, "You can only create tweets for yourself")
	}

	if _, err := svc.userRepo.GetTwitterAccount(c, callerID); err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewForbiddenError(nil, "User must have a verified Twitter account to tweet")
		}
		return nil, err
	}

	tweet, err := svc.tweetRepo.Create(c, &model.Tweet{
		Content: req.Content,
		UserID:  callerID,
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":  callerID,
		"tweet_id": tweet.ID,
	}).Info("Tweet created")
	return tweet, nil
}
