package testutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignedToken builds an HS256 JWT with the given expiry, like the auth service issues.
func SignedToken(userID int64, exp time.Time) string {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    userID,
		"token_type": "access",
		"exp":        exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		panic(err)
	}
	return s
}
