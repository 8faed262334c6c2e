package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"studyhub/internal/config"
	"studyhub/internal/dto"
	"studyhub/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

const defaultAccessTokenTTL = 24 * time.Hour

// AuthService issues and validates the bearer tokens that carry a user id.
type AuthService interface {
	IssueToken(userID, username string) (string, error)
	ValidateToken(tokenString string) (*dto.AuthClaims, error)
}

type authServiceImpl struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

// NewAuthService creates a new AuthService. Without a configured secret a
// random one is generated, so tokens do not survive a restart.
func NewAuthService(cfg config.JWTConfig) (AuthService, error) {
	secret := []byte(cfg.SecretKey)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate jwt secret: %w", err)
		}
		logger.Get().Warn("jwt.secret_key is not set; using a random per-process secret")
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = defaultAccessTokenTTL
	}

	return &authServiceImpl{
		secret: secret,
		ttl:    ttl,
		issuer: cfg.Issuer,
		now:    time.Now,
	}, nil
}

func (s *authServiceImpl) IssueToken(userID, username string) (string, error) {
	now := s.now()
	claims := dto.AuthClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

func (s *authServiceImpl) ValidateToken(tokenString string) (*dto.AuthClaims, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			logger.Get().Debug("JWT token expired", zap.Error(err))
		} else {
			logger.Get().Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	claims, ok := token.Claims.(*dto.AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidJWTToken
	}
	return claims, nil
}
