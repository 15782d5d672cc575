package dto

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/prophesy-fun/prophesy_api/shared"
)

const (
	LinkedAccountTwitter     = "twitter_oauth"
	LinkedAccountWallet      = "wallet"
	LinkedAccountSmartWallet = "smart_wallet"
	LinkedAccountEmail       = "email"
)

// LinkedAccount is one identity attached to an identity provider user.
// The set of implementations is closed; consumers switch over the concrete
// types.
type LinkedAccount interface {
	Type() string
	linkedAccount()
}

type TwitterAccount struct {
	Subject           string `json:"subject"`
	Username          string `json:"username"`
	Name              string `json:"name"`
	ProfilePictureURL string `json:"profile_picture_url"`
	FirstVerifiedAt   int64  `json:"first_verified_at"`
	LatestVerifiedAt  int64  `json:"latest_verified_at"`
}

type WalletAccount struct {
	Address          string `json:"address"`
	ChainType        string `json:"chain_type"`
	WalletClientType string `json:"wallet_client_type"`
}

type SmartWalletAccount struct {
	Address         string `json:"address"`
	SmartWalletType string `json:"smart_wallet_type"`
}

type EmailAccount struct {
	Address string `json:"address"`
}

// UnknownAccount keeps account kinds this service does not handle yet.
type UnknownAccount struct {
	Kind string
}

func (TwitterAccount) Type() string     { return LinkedAccountTwitter }
func (WalletAccount) Type() string      { return LinkedAccountWallet }
func (SmartWalletAccount) Type() string { return LinkedAccountSmartWallet }
func (EmailAccount) Type() string       { return LinkedAccountEmail }
func (a UnknownAccount) Type() string   { return a.Kind }

func (TwitterAccount) linkedAccount()     {}
func (WalletAccount) linkedAccount()      {}
func (SmartWalletAccount) linkedAccount() {}
func (EmailAccount) linkedAccount()       {}
func (UnknownAccount) linkedAccount()     {}

// LinkedAccountEntry decodes one element of linked_accounts by its type tag.
type LinkedAccountEntry struct {
	Account LinkedAccount
}

func (e *LinkedAccountEntry) UnmarshalJSON(data []byte) error {
	var head struct {
		Type string `json:"type"`
	}
	if err := sonic.Unmarshal(data, &head); err != nil {
		return err
	}

	var err error
	switch head.Type {
	case LinkedAccountTwitter:
		var a TwitterAccount
		err = sonic.Unmarshal(data, &a)
		e.Account = a
	case LinkedAccountWallet:
		var a WalletAccount
		err = sonic.Unmarshal(data, &a)
		e.Account = a
	case LinkedAccountSmartWallet:
		var a SmartWalletAccount
		err = sonic.Unmarshal(data, &a)
		e.Account = a
	case LinkedAccountEmail:
		var a EmailAccount
		err = sonic.Unmarshal(data, &a)
		e.Account = a
	default:
		e.Account = UnknownAccount{Kind: head.Type}
	}
	if err != nil {
		return fmt.Errorf("decode %s account: %w", head.Type, err)
	}
	return nil
}

// IdentityUser is the identity provider's view of a user.
type IdentityUser struct {
	ID             string               `json:"id"`
	CreatedAt      int64                `json:"created_at"`
	LinkedAccounts []LinkedAccountEntry `json:"linked_accounts"`
}

func DecodeIdentityUser(data []byte) (*IdentityUser, error) {
	var user IdentityUser
	if err := sonic.Unmarshal(data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (u IdentityUser) Accounts() []LinkedAccount {
	accounts := make([]LinkedAccount, 0, len(u.LinkedAccounts))
	for _, entry := range u.LinkedAccounts {
		if entry.Account != nil {
			accounts = append(accounts, entry.Account)
		}
	}
	return accounts
}

// ToCreateUserRequest projects linked accounts onto the user upsert
// payload. The first twitter account wins; every wallet is kept.
func (u IdentityUser) ToCreateUserRequest() CreateUserRequest {
	req := CreateUserRequest{
		ID:       u.ID,
		AuthType: shared.AuthTypeWallet,
		Wallets:  []WalletInput{},
	}

	for _, account := range u.Accounts() {
		switch a := account.(type) {
		case TwitterAccount:
			if req.Twitter != nil {
				continue
			}
			req.AuthType = shared.AuthTypeTwitter
			req.Twitter = &TwitterProfile{
				Subject:           a.Subject,
				Username:          a.Username,
				Name:              a.Name,
				ProfilePictureURL: a.ProfilePictureURL,
				FirstVerifiedAt:   unixTime(a.FirstVerifiedAt),
				LatestVerifiedAt:  unixTime(a.LatestVerifiedAt),
			}
		case WalletAccount:
			req.Wallets = append(req.Wallets, WalletInput{
				Address:          a.Address,
				WalletType:       LinkedAccountWallet,
				WalletClientType: a.WalletClientType,
			})
		case SmartWalletAccount:
			req.Wallets = append(req.Wallets, WalletInput{
				Address:          a.Address,
				WalletType:       LinkedAccountSmartWallet,
				WalletClientType: a.SmartWalletType,
			})
		case EmailAccount, UnknownAccount:
		}
	}

	return req
}

func unixTime(sec int64) *time.Time {
	if sec <= 0 {
		return nil
	}
	t := time.Unix(sec, 0).UTC()
	return &t
}
