package services

import (
	ctx "context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/shared"
)

const (
	defaultPrivyAPIURL = "https://auth.privy.io"

	maxProviderResponseBytes = 1 << 20
)

var errResponseTooLarge = errors.New("response body exceeds size limit")

// IdentityProvider returns a user's linked accounts as seen by the identity
// provider.
type IdentityProvider interface {
	GetUser(c ctx.Context, userID string) (*dto.IdentityUser, error)
}

type IdentityService struct {
	context.DefaultService
	httpClient *http.Client
	apiURL     string
	appID      string
	appSecret  string
}

const IDENTITY_SVC = "identity_svc"

func NewIdentityService(apiURL, appID, appSecret string) *IdentityService {
	return &IdentityService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		apiURL:     strings.TrimRight(apiURL, "/"),
		appID:      appID,
		appSecret:  appSecret,
	}
}

func (svc IdentityService) Id() string {
	return IDENTITY_SVC
}

func (svc *IdentityService) Configure(c *context.Context) error {
	svc.httpClient = &http.Client{
		Timeout: 30 * time.Second,
	}
	svc.apiURL = strings.TrimRight(getEnv("PRIVY_API_URL", defaultPrivyAPIURL), "/")
	svc.appID = os.Getenv("PRIVY_APP_ID")
	svc.appSecret = os.Getenv("PRIVY_APP_SECRET")
	if svc.appSecret == "" {
		log.Warn("PRIVY_APP_SECRET not set, user sync will fail")
	}
	return svc.DefaultService.Configure(c)
}

func (svc *IdentityService) Start() error {
	return nil
}

func (svc *IdentityService) GetUser(c ctx.Context, userID string) (*dto.IdentityUser, error) {
	endpoint := fmt.Sprintf("%s/api/v1/users/%s", svc.apiURL, url.PathEscape(userID))

	req, err := http.NewRequestWithContext(c, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, shared.NewInternalError(err, "Failed to build identity request")
	}
	req.SetBasicAuth(svc.appID, svc.appSecret)
	req.Header.Set("privy-app-id", svc.appID)
	req.Header.Set("Accept", "application/json")

	resp, err := svc.httpClient.Do(req)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to reach identity provider")
		return nil, shared.NewInternalError(err, "Failed to fetch user from identity provider")
	}
	defer resp.Body.Close()

	body, err := readProviderBody(resp.Body)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to read identity provider response")
		return nil, shared.NewInternalError(err, "Failed to read identity provider response")
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, shared.NewNotFoundError(nil, "User not found at identity provider")
	case resp.StatusCode != http.StatusOK:
		log.WithFields(log.Fields{
			"status":  resp.StatusCode,
			"user_id": userID,
		}).Error("Identity provider returned non-200 status")
		return nil, shared.NewInternalError(
			fmt.Errorf("identity provider returned status %d", resp.StatusCode),
			"Failed to fetch user from identity provider")
	}

	user, err := dto.DecodeIdentityUser(body)
	if err != nil {
		log.WithError(err).WithField("user_id", userID).Error("Failed to decode identity provider response")
		return nil, shared.NewInternalError(err, "Failed to decode identity provider response")
	}
	if user.ID == "" {
		return nil, shared.NewInternalError(errors.New("empty user id"), "Failed to decode identity provider response")
	}
	return user, nil
}

// readProviderBody reads at most maxProviderResponseBytes of an upstream
// response and fails when there is more.
func readProviderBody(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxProviderResponseBytes+1))
	if err != nil {
		return nil, err
	}
	if len(body) > maxProviderResponseBytes {
		return nil, errResponseTooLarge
	}
	return body, nil
}
