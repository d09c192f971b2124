package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Type   string `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
}

func signToken(userID uint, email, role, jwtSecret string, tokenType TokenType, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	expirationTime := now.Add(ttl)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   string(tokenType),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   email,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expirationTime, nil
}

// GenerateAccessToken issues a short-lived access token.
func GenerateAccessToken(userID uint, email, role, jwtSecret string) (string, time.Time, error) {
	return signToken(userID, email, role, jwtSecret, AccessToken, accessTokenTTL)
}

// GenerateRefreshToken issues a long-lived refresh token.
func GenerateRefreshToken(userID uint, email, role, jwtSecret string) (string, time.Time, error) {
	return signToken(userID, email, role, jwtSecret, RefreshToken, refreshTokenTTL)
}

func GenerateTokenPair(userID uint, email, role, jwtSecret string) (*TokenPair, error) {
	accessToken, accessExp, err := GenerateAccessToken(userID, email, role, jwtSecret)
	if err != nil {
		return nil, err
	}

	refreshToken, refreshExp, err := GenerateRefreshToken(userID, email, role, jwtSecret)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessExp.Unix(),
		RefreshTokenExpiresAt: refreshExp.Unix(),
	}, nil
}

// ValidateToken parses and verifies a token and returns its claims.
func ValidateToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
