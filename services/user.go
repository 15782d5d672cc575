package services

import (
	ctx "context"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/services/repositories"
	"github.com/prophesy-fun/prophesy_api/shared"
)

type UserService struct {
	context.DefaultService

	userRepo *repositories.UserRepository
	identity IdentityProvider
}

const USER_SVC = "user_svc"

func NewUserService(db *gorm.DB, identity IdentityProvider) *UserService {
	return &UserService{
		userRepo: repositories.NewUserRepository(db),
		identity: identity,
	}
}

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Configure(c *context.Context) error {
	return svc.DefaultService.Configure(c)
}

func (svc *UserService) Start() error {
	svc.userRepo = repositories.NewUserRepository(svc.Service(DATABASE_SVC).(*DatabaseService).Db())
	if identitySvc, ok := svc.Service(IDENTITY_SVC).(*IdentityService); ok {
		svc.identity = identitySvc
	}
	return nil
}

// CreateUser upserts the caller's own user record and linked accounts.
func (svc *UserService) CreateUser(c ctx.Context, callerID string, req dto.CreateUserRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ID != callerID {
		return nil, shared.NewForbiddenError(nil, "You can only create an account for yourself")
	}

	user, err := svc.userRepo.UpsertUser(c, req)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user_id":   user.ID,
		"auth_type": user.AuthType,
		"wallets":   len(user.Wallets),
	}).Info("User upserted")
	return user, nil
}

// SyncUser refreshes the caller's linked accounts from the identity
// provider.
func (svc *UserService) SyncUser(c ctx.Context, callerID string) (*model.User, error) {
	if svc.identity == nil {
		return nil, shared.NewInternalError(nil, "Identity provider not configured")
	}

	identityUser, err := svc.identity.GetUser(c, callerID)
	if err != nil {
		return nil, err
	}
	if identityUser.ID != callerID {
		return nil, shared.NewForbiddenError(nil, "You can only sync your own account")
	}

	return svc.CreateUser(c, callerID, identityUser.ToCreateUserRequest())
}

func (svc *UserService) GetUsers(c ctx.Context) ([]model.User, error) {
	return svc.userRepo.ListUsers(c)
}

func (svc *UserService) GetUser(c ctx.Context, userID string) (*model.User, error) {
	user, err := svc.userRepo.GetUser(c, userID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewNotFoundError(nil, "User not found or not publicly accessible")
		}
		return nil, err
	}
	return user, nil
}
