package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// RoleAuthenticated is the role carried by signed-in admins, matching the
// role name the store's row-level policies grant writes to.
const RoleAuthenticated = "authenticated"

var (
	// ErrInvalidCredentials is returned when an email/password pair is rejected.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned when a bearer token cannot be resolved to a user.
	ErrInvalidToken = errors.New("invalid token")
)

// IdentityProvider signs admins in and resolves bearer tokens to identities.
type IdentityProvider interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	GetUser(ctx context.Context, token string) (*models.Identity, error)
}

// LocalIdentityProvider authenticates admins stored in the admin_users table
// and issues HS256 tokens. Signing with the store's JWT secret lets the store
// verify the same tokens.
type LocalIdentityProvider struct {
	adminRepo  repositories.AdminRepository
	jwtSecret  []byte
	tokenDurat time.Duration
}

// NewLocalIdentityProvider creates a new LocalIdentityProvider.
func NewLocalIdentityProvider(adminRepo repositories.AdminRepository, jwtSecret string, tokenTTL time.Duration) *LocalIdentityProvider {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &LocalIdentityProvider{
		adminRepo:  adminRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: tokenTTL,
	}
}

// RegisterAdmin creates an admin account with a bcrypt-hashed password.
func (s *LocalIdentityProvider) RegisterAdmin(ctx context.Context, email, password string) (*models.AdminUser, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}

	existing, err := s.adminRepo.GetByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, fmt.Errorf("email '%s' already registered", email)
	}
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &models.AdminUser{Email: email, PasswordHash: string(hashedPassword)}
	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return nil, fmt.Errorf("failed to register admin: %w", err)
	}
	return admin, nil
}

// EnsureAdmin registers the account unless one with the same email exists.
func (s *LocalIdentityProvider) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if _, err := s.adminRepo.GetByEmail(ctx, email); err == nil {
		return false, nil
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return false, err
	}
	if _, err := s.RegisterAdmin(ctx, email, password); err != nil {
		return false, err
	}
	return true, nil
}

// SignIn checks the password and issues an access token.
func (s *LocalIdentityProvider) SignIn(ctx context.Context, email, password string) (*models.Session, error) {
	email = strings.TrimSpace(email)
	admin, err := s.adminRepo.GetByEmail(ctx, email)
	if err != nil {
		// Unknown accounts and wrong passwords look the same to the caller.
		zerolog.Ctx(ctx).Debug().Err(err).Msg("admin lookup failed")
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.ID,
		"email": admin.Email,
		"role":  RoleAuthenticated,
		"aud":   RoleAuthenticated,
		"exp":   now.Add(s.tokenDurat).Unix(),
		"iat":   now.Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.Session{
		AccessToken: tokenString,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokenDurat / time.Second),
		User:        models.Identity{ID: admin.ID, Email: admin.Email, Role: RoleAuthenticated},
	}, nil
}

// GetUser validates the token and resolves it to a still-existing admin.
func (s *LocalIdentityProvider) GetUser(ctx context.Context, token string) (*models.Identity, error) {
	claims, err := s.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	admin, err := s.adminRepo.GetByID(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	return &models.Identity{ID: admin.ID, Email: admin.Email, Role: RoleAuthenticated}, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *LocalIdentityProvider) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if role, _ := claims["role"].(string); role != RoleAuthenticated {
		return nil, fmt.Errorf("%w: role %q is not allowed", ErrInvalidToken, role)
	}
	return claims, nil
}
