package auth

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultExpireHours = 168 // 7 days

var ErrMissingSecret = errors.New("JWT_SECRET_KEY is not set")

func jwtSecret() ([]byte, error) {
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return []byte(secret), nil
}

func expireHours() int {
	if raw := os.Getenv("JWT_EXPIRE_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			return hours
		}
	}
	return defaultExpireHours
}

// GenerateToken issues a signed bearer token carrying the user id.
func GenerateToken(userID uint) (string, error) {
	secret, err := jwtSecret()
	if err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(expireHours()) * time.Hour).Unix(),
	})

	return token.SignedString(secret)
}

// ParseToken validates signature and expiry and returns the encoded user id.
func ParseToken(tokenString string) (uint, error) {
	secret, err := jwtSecret()
	if err != nil {
		return 0, err
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token missing user_id claim")
	}

	return uint(userID), nil
}
