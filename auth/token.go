package auth

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/storely/storefront-api/models"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func refreshSecret() []byte {
	// Falls back to the access secret, same as the dev setup
	if v := os.Getenv("REFRESH_TOKEN_SECRET"); v != "" {
		return []byte(v)
	}
	return jwtSecret()
}

// IssueAccessToken signs a short-lived session token carrying the user's role.
func IssueAccessToken(user models.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   user.ID,
		"role": string(user.Role),
		"typ":  "access",
		"exp":  time.Now().Add(AccessTokenTTL).Unix(),
	})
	return t.SignedString(jwtSecret())
}

// IssueRefreshToken signs a long-lived token used only to mint new access tokens.
func IssueRefreshToken(user models.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":  user.ID,
		"typ": "refresh",
		"exp": time.Now().Add(RefreshTokenTTL).Unix(),
	})
	return t.SignedString(refreshSecret())
}

// ParseAccessToken validates a session token and returns the user ID and role.
func ParseAccessToken(token string) (uint, models.Role, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return jwtSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return 0, "", ErrInvalidToken
	}
	if claims["typ"] != "access" {
		return 0, "", ErrInvalidToken
	}
	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, "", ErrInvalidToken
	}
	role, _ := claims["role"].(string)
	return uint(idFloat), models.Role(role), nil
}

// ParseRefreshToken validates a refresh token and returns the user ID.
func ParseRefreshToken(token string) (uint, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return refreshSecret(), nil
	})
	if err != nil || !parsed.Valid {
		return 0, ErrInvalidToken
	}
	if claims["typ"] != "refresh" {
		return 0, ErrInvalidToken
	}
	idFloat, ok := claims["id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return uint(idFloat), nil
}
