package users

import (
	"time"

	"github.com/google/uuid"
)

// User representa um usuário do sistema
type User struct {
	ID          string    `json:"id" db:"id"`
	Username    string    `json:"username" db:"username"`
	Email       string    `json:"email" db:"email"`
	PhoneNumber string    `json:"phone_number,omitempty" db:"phone_number"`
	Role        string    `json:"role,omitempty" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// NewUser cria uma nova instância de User
func NewUser(username, email, phoneNumber string) *User {
	return &User{
		ID:          uuid.New().String(),
		Username:    username,
		Email:       email,
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now(),
	}
}
