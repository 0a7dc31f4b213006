package services

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"focusboard/model"
)

// CreateAccessToken mints the HMAC bearer token the auth collaborator
// normally issues. The server only ever validates tokens; this mint
// exists for the dev CLI and the handler tests.
func CreateAccessToken(userID string) (string, error) {
	hmacSampleSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
	claims := &model.AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "focusboard",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(60 * time.Minute)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(hmacSampleSecret)
}
