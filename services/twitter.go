package services

import (
	ctx "context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/services/repositories"
	"github.com/prophesy-fun/prophesy_api/shared"
)

const (
	defaultTwitterAPIURL   = "https://api.twitter.com"
	defaultTwitterCacheTTL = 5 * time.Minute
)

// TwitterService refreshes a user's public twitter metrics using the
// caller's own twitter access token.
type TwitterService struct {
	context.DefaultService
	httpClient *http.Client
	apiURL     string
	cacheTTL   time.Duration

	userRepo *repositories.UserRepository
	redisSvc *RedisService
}

const TWITTER_SVC = "twitter_svc"

func NewTwitterService(db *gorm.DB, apiURL string, redisSvc *RedisService, cacheTTL time.Duration) *TwitterService {
	return &TwitterService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     strings.TrimRight(apiURL, "/"),
		cacheTTL:   cacheTTL,
		userRepo:   repositories.NewUserRepository(db),
		redisSvc:   redisSvc,
	}
}

func (svc TwitterService) Id() string {
	return TWITTER_SVC
}

func (svc *TwitterService) Configure(c *context.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 30 * time.Second,
	}
	svc.apiURL = strings.TrimRight(getEnv("TWITTER_API_URL", defaultTwitterAPIURL), "/")

	svc.cacheTTL = defaultTwitterCacheTTL
	if v := getEnv("TWITTER_CACHE_TTL", ""); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl < 0 {
			return fmt.Errorf("invalid TWITTER_CACHE_TTL %q", v)
		}
		svc.cacheTTL = ttl
	}
	return svc.DefaultService.Configure(c)
}

func (svc *TwitterService) Start() error {
	svc.userRepo = repositories.NewUserRepository(svc.Service(DATABASE_SVC).(*DatabaseService).Db())
	if redisSvc, ok := svc.Service(REDIS_SVC).(*RedisService); ok && redisSvc.Enabled() {
		svc.redisSvc = redisSvc
	}
	return nil
}

func metricsCacheKey(userID string) string {
	return fmt.Sprintf("twitter:metrics:%s", userID)
}

func (svc *TwitterService) GetFollowers(c ctx.Context, callerID string, req dto.TwitterFollowersRequest) (*dto.TwitterFollowersResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.UserID != callerID {
		return nil, shared.NewForbiddenError(nil, "You can only fetch your own Twitter metrics")
	}

	cacheKey := metricsCacheKey(req.UserID)
	if svc.cacheEnabled() {
		var cached dto.TwitterFollowersResponse
		found, err := svc.redisSvc.GetJSON(c, cacheKey, &cached)
		if err == nil && found {
			log.WithField("user_id", req.UserID).Debug("Twitter metrics cache hit")
			return &cached, nil
		}
	}

	account, err := svc.userRepo.GetTwitterAccount(c, req.UserID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewNotFoundError(nil, "Twitter account not found")
		}
		return nil, err
	}

	metrics, err := svc.fetchPublicMetrics(c, account.TwitterID, req.AccessToken)
	if err != nil {
		return nil, err
	}

	updated, err := svc.userRepo.UpdateTwitterMetrics(c, account.ID, *metrics, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	resp := followersResponse(updated)

	if svc.cacheEnabled() {
		if err := svc.redisSvc.Set(c, cacheKey, resp, svc.cacheTTL); err != nil {
			log.WithError(err).WithField("user_id", req.UserID).Warn("Failed to cache twitter metrics")
		}
	}
	return resp, nil
}

func (svc *TwitterService) cacheEnabled() bool {
	return svc.redisSvc.Enabled() && svc.cacheTTL > 0
}

func (svc *TwitterService) fetchPublicMetrics(c ctx.Context, twitterID, accessToken string) (*dto.TwitterPublicMetrics, error) {
	endpoint := fmt.Sprintf("%s/2/users/%s?user.fields=public_metrics", svc.apiURL, url.PathEscape(twitterID))

	req, err := http.NewRequestWithContext(c, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to fetch Twitter followers")
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("twitter_id", twitterID).Error("Failed to reach Twitter API")
		return nil, shared.NewInternalError(err, "Failed to fetch Twitter followers")
	}
	defer resp.Body.Close()

	body, err := readProviderBody(resp.Body)
	if err != nil {
		log.WithError(err).WithField("twitter_id", twitterID).Error("Failed to read Twitter API response")
		return nil, shared.NewInternalError(err, "Failed to fetch Twitter followers")
	}

	if resp.StatusCode != http.StatusOK {
		log.WithFields(log.Fields{
			"status":     resp.StatusCode,
			"twitter_id": twitterID,
			"body":       string(body),
		}).Error("Twitter API error")

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, shared.NewRateLimitedError("Twitter API rate limit exceeded")
		}
		return nil, shared.NewInternalError(
			fmt.Errorf("twitter api returned status %d", resp.StatusCode),
			"Twitter API error: "+http.StatusText(resp.StatusCode))
	}

	var lookup dto.TwitterUserLookup
	if err := shared.JSONAPI.Unmarshal(body, &lookup); err != nil {
		return nil, shared.NewInternalError(err, "Invalid response from Twitter API")
	}
	if lookup.Data == nil || lookup.Data.PublicMetrics == nil {
		return nil, shared.NewInternalError(nil, "Invalid response from Twitter API")
	}
	return lookup.Data.PublicMetrics, nil
}

func followersResponse(account *model.TwitterAccount) *dto.TwitterFollowersResponse {
	return &dto.TwitterFollowersResponse{
		FollowersCount: account.FollowersCount,
		FollowingCount: account.FollowingCount,
		TweetCount:     account.TweetCount,
		ListedCount:    account.ListedCount,
		LikeCount:      account.LikeCount,
		MediaCount:     account.MediaCount,
		LastFetched:    account.LastMetricsFetch,
	}
}
