package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"alfredoptarigan/enterprise-ats/internal/models"
	"alfredoptarigan/enterprise-ats/internal/repositories"
)

type UserService interface {
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
	cost     int
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
		cost:     bcrypt.DefaultCost,
	}
}

func (s *userService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		Role:         models.UserRole(req.Role),
		PasswordHash: string(hash),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]models.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]models.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, models.UserResponse{
			ID:    u.ID.String(),
			Name:  u.Name,
			Email: u.Email,
			Role:  string(u.Role),
		})
	}
	return out, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
