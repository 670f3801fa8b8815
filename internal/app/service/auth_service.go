package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"question_review/internal/common"
	"question_review/internal/common/security"
	"question_review/internal/domain/model"
	"question_review/internal/domain/repository"
	"question_review/internal/platform/throttle"
)

type AuthService struct {
	userRepo repository.UserRepository
	limiter  throttle.LoginLimiter
}

func NewAuthService(userRepo repository.UserRepository, limiter throttle.LoginLimiter) *AuthService {
	return &AuthService{userRepo: userRepo, limiter: limiter}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (int64, error) {
	if req.Username == "" || req.Password == "" {
		return 0, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}
	if req.Role == "" {
		req.Role = model.RoleTeacher // Default role
	}
	if !model.ValidRole(req.Role) {
		return 0, fmt.Errorf("unknown role %q: %w", req.Role, common.ErrValidation)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return 0, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		HashedPassword: hashedPassword,
		Role:           req.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// Repo returns common.ErrConflict on a duplicate username
		return 0, err
	}
	return user.ID, nil
}

// Login authenticates and issues the identity token. A missing user and a
// wrong password produce the same error; bcrypt runs in both branches so the
// two failures stay in the same latency class.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	allowed, err := s.limiter.Allow(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("login throttle: %w", err)
	}
	if !allowed {
		return nil, common.ErrTooManyAttempts
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			security.CheckPasswordHash(req.Password, dummyHash)
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if err := s.limiter.Reset(ctx, req.Username); err != nil {
		// The throttle is best-effort; a reset failure must not undo a
		// correct login.
		log.Printf("login throttle reset for %s failed: %v", req.Username, err)
	}

	return &LoginResponse{
		Message:  "Login successful",
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, nil
}

// EnsureAdmin seeds the default admin account on first start. An existing
// account with that username is left alone.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	user := &model.User{
		Username:       username,
		HashedPassword: hashedPassword,
		Role:           model.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil
		}
		return err
	}
	return nil
}

// LookupID resolves a username to its id.
func (s *AuthService) LookupID(ctx context.Context, username string) (int64, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// ListTeachers returns the assignment targets in insertion order.
func (s *AuthService) ListTeachers(ctx context.Context) ([]model.UserSummary, error) {
	return s.userRepo.ListByRole(ctx, model.RoleTeacher)
}

// dummyHash keeps the failed-lookup branch doing a bcrypt comparison. The
// plaintext it hashes is irrelevant; it only has to be a well-formed hash.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
