package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/prophesy-fun/prophesy_api/dto"
	"github.com/prophesy-fun/prophesy_api/model"
	"github.com/prophesy-fun/prophesy_api/shared"
)

// UserRepository handles user-related database operations
type UserRepository struct {
	BaseRepository
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{
		BaseRepository: NewBaseRepository(db),
	}
}

func (r *UserRepository) GetUser(ctx context.Context, userID string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Twitter").
		Preload("Wallets").
		Where("id = ?", userID).
		Take(&user).Error
	if err != nil {
		return nil, HandleError(err, "Failed to fetch user")
	}
	return &user, nil
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := r.db.WithContext(ctx).
		Preload("Twitter").
		Preload("Wallets").
		Order("created_at DESC").
		Find(&users).Error
	if err != nil {
		return nil, HandleError(err, "Failed to fetch users")
	}
	return users, nil
}

func (r *UserRepository) GetTwitterAccount(ctx context.Context, userID string) (*model.TwitterAccount, error) {
	var account model.TwitterAccount
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&account).Error; err != nil {
		return nil, HandleError(err, "Failed to fetch twitter account")
	}
	return &account, nil
}

func (r *UserRepository) UpdateTwitterMetrics(ctx context.Context, accountID string, metrics dto.TwitterPublicMetrics, fetchedAt time.Time) (*model.TwitterAccount, error) {
	err := r.db.WithContext(ctx).
		Model(&model.TwitterAccount{}).
		Where("id = ?", accountID).
		Updates(map[string]interface{}{
			"followers_count":    metrics.FollowersCount,
			"following_count":    metrics.FollowingCount,
			"tweet_count":        metrics.TweetCount,
			"listed_count":       metrics.ListedCount,
			"like_count":         metrics.LikeCount,
			"media_count":        metrics.MediaCount,
			"last_metrics_fetch": fetchedAt,
		}).Error
	if err != nil {
		return nil, HandleError(err, "Failed to update twitter metrics")
	}

	var account model.TwitterAccount
	if err := r.db.WithContext(ctx).Where("id = ?", accountID).Take(&account).Error; err != nil {
		return nil, HandleError(err, "Failed to update twitter metrics")
	}
	return &account, nil
}

// UpsertUser creates or updates a user together with their twitter account
// and wallets. Either everything is written or nothing is.
func (r *UserRepository) UpsertUser(ctx context.Context, req dto.CreateUserRequest) (*model.User, error) {
	err := r.Transaction(ctx, func(tx *gorm.DB) error {
		if err := upsertUserRow(tx, req); err != nil {
			return err
		}
		if req.Twitter != nil {
			if err := upsertTwitterAccount(tx, req.ID, req.Twitter); err != nil {
				return err
			}
		}
		for _, wallet := range req.Wallets {
			if err := upsertWallet(tx, req.ID, wallet); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetUser(ctx, req.ID)
}

func upsertUserRow(tx *gorm.DB, req dto.CreateUserRequest) error {
	var user model.User
	err := tx.Where("id = ?", req.ID).Take(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = model.User{ID: req.ID, AuthType: req.AuthType}
		return HandleError(tx.Create(&user).Error, "Failed to create user")
	case err != nil:
		return HandleError(err, "Failed to create user")
	}
	return HandleError(tx.Model(&user).Update("auth_type", req.AuthType).Error, "Failed to update user")
}

func upsertTwitterAccount(tx *gorm.DB, userID string, profile *dto.TwitterProfile) error {
	var account model.TwitterAccount
	err := tx.Where("user_id = ?", userID).Take(&account).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		account = model.TwitterAccount{
			UserID:            userID,
			TwitterID:         profile.Subject,
			Username:          profile.Username,
			Name:              profile.Name,
			ProfilePictureURL: profile.ProfilePictureURL,
			FirstVerifiedAt:   profile.FirstVerifiedAt,
			LatestVerifiedAt:  profile.LatestVerifiedAt,
		}
		return HandleError(tx.Create(&account).Error, "Failed to link twitter account")
	case err != nil:
		return HandleError(err, "Failed to link twitter account")
	}

	updates := map[string]interface{}{
		"username":            profile.Username,
		"name":                profile.Name,
		"profile_picture_url": profile.ProfilePictureURL,
	}
	if profile.LatestVerifiedAt != nil {
		updates["latest_verified_at"] = *profile.LatestVerifiedAt
	}
	return HandleError(tx.Model(&account).Updates(updates).Error, "Failed to update twitter account")
}

func upsertWallet(tx *gorm.DB, userID string, input dto.WalletInput) error {
	var wallet model.Wallet
	err := tx.Where("address = ?", input.Address).Take(&wallet).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		wallet = model.Wallet{
			UserID:           userID,
			Address:          input.Address,
			WalletType:       input.WalletType,
			WalletClientType: input.WalletClientType,
		}
		return HandleError(tx.Create(&wallet).Error, "Failed to link wallet")
	case err != nil:
		return HandleError(err, "Failed to link wallet")
	}

	if wallet.UserID != userID {
		return shared.NewConflictError(nil, "Wallet is linked to another user")
	}
	return HandleError(tx.Model(&wallet).Updates(map[string]interface{}{
		"wallet_type":        input.WalletType,
		"wallet_client_type": input.WalletClientType,
	}).Error, "Failed to update wallet")
}
