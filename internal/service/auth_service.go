package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"tdstrack/internal/config"
	"tdstrack/internal/domain"
)

// Claims represents the JWT claims issued for the admin session.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Token holds an issued access token.
type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// LoginInput is the DTO for login requests.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// AuthService defines the authentication contract. The service is backed
// by a single admin credential from configuration; there is no user store.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

type authService struct {
	adminEmail   string
	passwordHash []byte
	cfg          config.JWTConfig
}

// NewAuthService creates a new AuthService implementation. The admin
// password is hashed once at construction so the plaintext never lives
// beyond startup.
func NewAuthService(authCfg config.AuthConfig, jwtCfg config.JWTConfig) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(authCfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing admin password: %w", err)
	}
	return &authService{
		adminEmail:   authCfg.AdminEmail,
		passwordHash: hash,
		cfg:          jwtCfg,
	}, nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*Token, error) {
	if subtle.ConstantTimeCompare([]byte(input.Email), []byte(s.adminEmail)) != 1 {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return s.generateToken()
}

func (s *authService) generateToken() (*Token, error) {
	now := time.Now()
	expiry := now.Add(s.cfg.AccessTokenExpiry)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   s.adminEmail,
			Issuer:    s.cfg.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
			ID:        uuid.New().String(),
			Audience:  jwt.ClaimStrings{"access"},
		},
		Email: s.adminEmail,
		Role:  "admin",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return nil, fmt.Errorf("signing access token: %w", err)
	}

	return &Token{AccessToken: tokenString, ExpiresAt: expiry}, nil
}

func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if !token.Valid {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}
