package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/trailhead/campground-api/internal/core/domain"
	"github.com/trailhead/campground-api/internal/core/ports"
	"github.com/trailhead/campground-api/internal/core/validate"
)

// AuthService implements registration, login and logout. The deny-list is
// optional: when nil, logout only instructs the client to drop its cookie
// and the token stays valid until natural expiry.
type AuthService struct {
	users      ports.UserRepository
	tokens     ports.TokenService
	denylist   ports.TokenDenylist
	bcryptCost int
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, tokens ports.TokenService, denylist ports.TokenDenylist, bcryptCost int, logger zerolog.Logger) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{users: users, tokens: tokens, denylist: denylist, bcryptCost: bcryptCost, logger: logger}
}

func (s *AuthService) Register(ctx context.Context, username, email, password, telephone string) (*domain.User, error) {
	if err := validate.Registration(username, email, password, telephone); err != nil {
		return nil, domain.NewValidationError(err.Error())
	}
	return s.createUser(ctx, username, email, password, telephone, domain.RoleUser)
}

func (s *AuthService) RegisterAdmin(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.NewValidationError("All fields are required")
	}
	if !validate.Email(email) {
		return nil, domain.NewValidationError("Invalid email format")
	}
	if !validate.Password(password) {
		return nil, domain.NewValidationError("Password must be at least 6 characters long")
	}
	return s.createUser(ctx, name, email, password, "", domain.RoleAdmin)
}

func (s *AuthService) createUser(ctx context.Context, username, email, password, telephone, role string) (*domain.User, error) {
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, domain.ErrUserExists
	} else if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Telephone:    telephone,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("email", email).Str("role", role).Msg("user registered")
	return created, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if err := validate.Login(email, password); err != nil {
		return "", nil, domain.NewValidationError(err.Error())
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown email and wrong password must be indistinguishable.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", user.Role).Msg("login successful")
	return token, user, nil
}

func (s *AuthService) Logout(ctx context.Context, claims ports.TokenClaims) error {
	if s.denylist == nil || claims.TokenID == "" {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.denylist.Revoke(ctx, claims.TokenID, ttl); err != nil {
		s.logger.Error().Err(err).Str("user_id", claims.UserID).Msg("token revocation failed")
		return err
	}
	s.logger.Info().Str("user_id", claims.UserID).Msg("token revoked")
	return nil
}

var _ ports.AuthService = (*AuthService)(nil)
