package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/apperr"
)

// Repository define a interface para operações de banco de dados de usuários
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, userID string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	DeleteUser(ctx context.Context, userID string) error
}

// UserRepository implementa Repository usando PostgreSQL
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository cria uma nova instância de UserRepository
func NewUserRepository(db *pgxpool.Pool) Repository {
	return &UserRepository{
		db: db,
	}
}

// CreateUser cria um novo usuário no banco de dados
func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, username, email, phone_number, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Username, user.Email, user.PhoneNumber, user.Role, user.CreatedAt)
	return err
}

// GetUser busca um usuário pelo ID
func (r *UserRepository) GetUser(ctx context.Context, userID string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, phone_number, role, created_at
		FROM users WHERE id = $1
	`, userID).Scan(&user.ID, &user.Username, &user.Email, &user.PhoneNumber, &user.Role, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail busca um usuário pelo e-mail
func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.db.QueryRow(ctx, `
		SELECT id, username, email, phone_number, role, created_at
		FROM users WHERE email = $1
	`, email).Scan(&user.ID, &user.Username, &user.Email, &user.PhoneNumber, &user.Role, &user.CreatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("user %s: %w", email, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser remove um usuário
func (r *UserRepository) DeleteUser(ctx context.Context, userID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s: %w", userID, apperr.ErrNotFound)
	}
	return nil
}
