package dto

import "time"

type CreateUserRequest struct {
	ID       string          `json:"id" validate:"required"`
	AuthType string          `json:"auth_type" validate:"required"`
	Twitter  *TwitterProfile `json:"twitter,omitempty" validate:"omitempty"`
	Wallets  []WalletInput   `json:"wallets" validate:"omitempty,dive"`
}

type TwitterProfile struct {
	Subject           string     `json:"subject" validate:"required"`
	Username          string     `json:"username"`
	Name              string     `json:"name"`
	ProfilePictureURL string     `json:"profile_picture_url"`
	FirstVerifiedAt   *time.Time `json:"first_verified_at,omitempty"`
	LatestVerifiedAt  *time.Time `json:"latest_verified_at,omitempty"`
}

type WalletInput struct {
	Address          string `json:"address" validate:"required"`
	WalletType       string `json:"wallet_type" validate:"required"`
	WalletClientType string `json:"wallet_client_type"`
}

func (r CreateUserRequest) Validate() error {
	return validateStruct(r)
}
