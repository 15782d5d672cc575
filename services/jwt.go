package services

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"
)

const PrivyIssuer = "privy.io"

// JWTService verifies access tokens issued by the identity provider. Tokens
// are ES256 signed; the subject is the user's DID.
type JWTService struct {
	context.DefaultService

	appID     string
	publicKey *ecdsa.PublicKey
	parser    *jwt.Parser
}

const JWT_SVC = "jwt_svc"

func NewJWTService(appID string, publicKey *ecdsa.PublicKey) *JWTService {
	svc := &JWTService{appID: appID, publicKey: publicKey}
	svc.initParser()
	return svc
}

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	svc.appID = os.Getenv("PRIVY_APP_ID")
	if svc.appID == "" {
		return errors.New("PRIVY_APP_ID is required")
	}

	pem := os.Getenv("PRIVY_VERIFICATION_KEY")
	if pem == "" {
		return errors.New("PRIVY_VERIFICATION_KEY is required")
	}
	key, err := jwt.ParseECPublicKeyFromPEM([]byte(strings.ReplaceAll(pem, `\n`, "\n")))
	if err != nil {
		return fmt.Errorf("invalid PRIVY_VERIFICATION_KEY: %w", err)
	}
	svc.publicKey = key
	svc.initParser()

	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

func (svc *JWTService) initParser() {
	svc.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(PrivyIssuer),
		jwt.WithAudience(svc.appID),
		jwt.WithExpirationRequired(),
	)
}

// VerifyAccessToken returns the user id carried by a valid token.
func (svc *JWTService) VerifyAccessToken(accessToken string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := svc.parser.ParseWithClaims(accessToken, claims, svc.getJWTKey)
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}

func (svc *JWTService) getJWTKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodECDSA); !ok {
		return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
	}

	return svc.publicKey, nil
}
