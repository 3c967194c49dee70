package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenDuration is how long an issued member token stays valid
const TokenDuration = 30 * 24 * time.Hour

// GenerateToken issues a signed token for a household member
func GenerateToken(secret []byte, userID uint, username string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"exp":      time.Now().Add(TokenDuration).Unix(),
		"iat":      time.Now().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// ParseToken validates a token and returns the member it identifies
func ParseToken(secret []byte, tokenString string) (uint, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, "", err
	}
	if !token.Valid {
		return 0, "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", fmt.Errorf("unexpected claims type")
	}
	idFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, "", fmt.Errorf("token missing user_id claim")
	}
	username, _ := claims["username"].(string)
	return uint(idFloat), username, nil
}
