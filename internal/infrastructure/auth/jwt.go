package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/atelier-edu/atelier/internal/domain/principal"
	"github.com/atelier-edu/atelier/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

type Claims struct {
	PrincipalID  uint           `json:"principal_id"`
	PrincipalSID string         `json:"principal_sid"`
	Role         principal.Role `json:"role"`
	TokenType    TokenType      `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type JWTService struct {
	secret           []byte
	accessExpMinutes int
}

func NewJWTService(secret string, accessExpMinutes int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
	}
}

func (s *JWTService) Generate(principalID uint, principalSID string, role principal.Role) (*TokenPair, error) {
	now := biztime.NowUTC()

	accessExp := now.Add(time.Duration(s.accessExpMinutes) * time.Minute)
	accessClaims := &Claims{
		PrincipalID:  principalID,
		PrincipalSID: principalSID,
		Role:         role,
		TokenType:    TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(accessExp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims)
	accessTokenString, err := accessToken.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshExp := now.Add(7 * 24 * time.Hour)
	refreshClaims := &Claims{
		PrincipalID:  principalID,
		PrincipalSID: principalSID,
		Role:         role,
		TokenType:    TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(refreshExp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims)
	refreshTokenString, err := refreshToken.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
