package auth

import (
	"context"
	"errors"
	"time"

	"student-records/internal/user"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrEmailExists        = errors.New("User with this email already exists")
)

type Service struct {
	userRepo user.Repository
	secret   string
	tokenTTL time.Duration
}

func NewService(userRepo user.Repository, secret string, tokenTTL time.Duration) *Service {
	return &Service{
		userRepo: userRepo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Signup creates a new user account. The role defaults to student unless the
// request names one.
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*user.User, error) {
	// Check if email exists
	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, user.ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = user.RoleStudent
	}

	return s.userRepo.Create(ctx, &user.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     role,
	})
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password fail identically so the endpoint cannot be used to probe for
// registered accounts.
func (s *Service) Login(ctx context.Context, req LoginRequest) (string, error) {
	u, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return NewAccessToken(s.secret, s.tokenTTL, u.ID, u.Name, u.Role)
}
