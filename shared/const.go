package shared

const (
	UserID = "user_id"

	AnonymousIdentity = "anonymous"

	HeaderAPIKey = "X-API-Key"

	TweetMaxLength = 280

	DefaultPageLimit = 20
	MaxPageLimit     = 100

	AuthTypeTwitter = "twitter_oauth"
	AuthTypeWallet  = "wallet"
)
