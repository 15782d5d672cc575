package dto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prophesy-fun/prophesy_api/shared"
)

func TestCreateTweetRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     CreateTweetRequest
		wantErr bool
		field   string
	}{
		{"valid", CreateTweetRequest{Content: "gm", UserID: "did:privy:1"}, false, ""},
		{"exactly 280 runes", CreateTweetRequest{Content: strings.Repeat("é", 280), UserID: "u"}, false, ""},
		{"empty", CreateTweetRequest{Content: "", UserID: "u"}, true, "content"},
		{"whitespace only", CreateTweetRequest{Content: " \n\t ", UserID: "u"}, true, "content"},
		{"too long", CreateTweetRequest{Content: strings.Repeat("a", 281), UserID: "u"}, true, "content"},
		{"missing user", CreateTweetRequest{Content: "gm"}, true, "user_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			appErr, ok := shared.GetAppError(err)
			require.True(t, ok)
			assert.Equal(t, shared.KindValidation, appErr.Kind)

			fields, ok := appErr.Data.([]ValidationError)
			require.True(t, ok)
			require.NotEmpty(t, fields)
			assert.Equal(t, tt.field, fields[0].Field)
		})
	}
}

func TestCreateUserRequest_ValidateDivesIntoWallets(t *testing.T) {
	req := CreateUserRequest{
		ID:       "did:privy:1",
		AuthType: shared.AuthTypeWallet,
		Wallets:  []WalletInput{{Address: "0x1", WalletType: "wallet"}, {WalletType: "wallet"}},
	}
	err := req.Validate()
	require.Error(t, err)
	assert.True(t, shared.IsKind(err, shared.KindValidation))

	req.Wallets = req.Wallets[:1]
	assert.NoError(t, req.Validate())

	req.Twitter = &TwitterProfile{}
	assert.Error(t, req.Validate())
}
