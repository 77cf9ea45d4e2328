package users

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/apperr"
)

// UserUseCase contém a lógica de negócio de usuários
type UserUseCase struct {
	repository Repository
	logger     *zap.Logger
}

// NewUserUseCase cria uma nova instância de UserUseCase
func NewUserUseCase(repository Repository, logger *zap.Logger) *UserUseCase {
	return &UserUseCase{
		repository: repository,
		logger:     logger,
	}
}

// CreateUserInput representa os dados de criação de um usuário
type CreateUserInput struct {
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	PhoneNumber string `json:"phone_number"`
}

// CreateUser cria um novo usuário
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*User, error) {
	if input.Username == "" || input.Email == "" {
		return nil, fmt.Errorf("username and email are required: %w", apperr.ErrValidation)
	}

	user := NewUser(input.Username, input.Email, input.PhoneNumber)
	if err := uc.repository.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Info("user created", zap.String("user_id", user.ID))
	return user, nil
}

// GetUser busca um usuário pelo ID
func (uc *UserUseCase) GetUser(ctx context.Context, userID string) (*User, error) {
	return uc.repository.GetUser(ctx, userID)
}

// DeleteUser remove um usuário
func (uc *UserUseCase) DeleteUser(ctx context.Context, userID string) error {
	return uc.repository.DeleteUser(ctx, userID)
}
