package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackerhq/bugtracker/internal/core/domain"
	"github.com/trackerhq/bugtracker/internal/core/ports"
)

// AuthService implements registration and the full token lifecycle:
// login, refresh and logout (revocation).
type AuthService struct {
	users      ports.UserRepository
	revoker    ports.TokenRevoker
	jwtSecret  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthService(users ports.UserRepository, revoker ports.TokenRevoker, jwtSecret string, accessTTL, refreshTTL time.Duration) *AuthService {
	if accessTTL <= 0 {
		accessTTL = time.Hour
	}
	if refreshTTL <= 0 {
		refreshTTL = 7 * 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		revoker:    revoker,
		jwtSecret:  jwtSecret,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Register creates a new account. The passwordHash argument is the client-side
// digest, which becomes the effective credential; it is re-hashed with bcrypt
// before storage so the database never holds it verbatim.
func (s *AuthService) Register(ctx context.Context, username, email, passwordHash, role string) (*domain.User, error) {
	if username == "" || email == "" || strings.TrimSpace(passwordHash) == "" {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	}
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwordHash), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.ParseRole(role),
	}

	return s.users.Create(ctx, user)
}

// Login verifies credentials and issues an access/refresh token pair.
func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.TokenPair, *domain.User, error) {
	if username == "" || password == "" {
		return nil, nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}

	access, err := s.generateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}
	refresh, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, nil, err
	}

	return &ports.TokenPair{AccessToken: access, RefreshToken: refresh}, user, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return "", domain.ErrInvalidToken
	}
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return "", domain.ErrInvalidToken
	}

	revoked, err := s.revoker.IsRevoked(ctx, refreshToken)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", domain.ErrTokenRevoked
	}

	username, _ := claims["username"].(string)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	return s.generateAccessToken(user)
}

// Logout revokes the presented tokens. Each entry is kept only for the
// token's residual lifetime.
func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) error {
	if accessToken != "" {
		if err := s.revoker.Revoke(ctx, accessToken, s.residualTTL(accessToken, s.accessTTL)); err != nil {
			return err
		}
	}
	if refreshToken != "" {
		if err := s.revoker.Revoke(ctx, refreshToken, s.residualTTL(refreshToken, s.refreshTTL)); err != nil {
			return err
		}
	}
	return nil
}

// IsRevoked reports whether the given token has been revoked by a logout.
func (s *AuthService) IsRevoked(ctx context.Context, token string) (bool, error) {
	return s.revoker.IsRevoked(ctx, token)
}

func (s *AuthService) generateAccessToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      user.Username,
		"username": user.Username,
		"role":     string(user.Role),
		"iat":      now.Unix(),
		"exp":      now.Add(s.accessTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) generateRefreshToken(user *domain.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"username": user.Username,
		"typ":      "refresh",
		"iat":      now.Unix(),
		"exp":      now.Add(s.refreshTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

func (s *AuthService) parseToken(token string) (jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		if err == nil {
			err = errors.New("token not valid")
		}
		return nil, err
	}
	return claims, nil
}

// residualTTL computes how long a revocation entry must live: until the
// token's own exp claim. The fallback covers tokens whose claims cannot be
// read anymore.
func (s *AuthService) residualTTL(token string, fallback time.Duration) time.Duration {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err == nil {
		if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
			if ttl := time.Until(exp.Time); ttl > 0 {
				return ttl
			}
			return time.Minute
		}
	}
	return fallback
}
