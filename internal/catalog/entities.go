package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product representa um produto do catálogo.
// Price é armazenado em NGN; a conversão para kobo
// acontece apenas na borda com o gateway de pagamento.
type Product struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description,omitempty" db:"description"`
	Price       int64     `json:"price" db:"price"`
	Category    string    `json:"category,omitempty" db:"category"`
	Stock       int       `json:"stock" db:"stock"`
	Image       string    `json:"image,omitempty" db:"image"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewProduct cria uma nova instância de Product
func NewProduct(name, description string, price int64, category string, stock int, image string) *Product {
	return &Product{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		Stock:       stock,
		Image:       image,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
}
