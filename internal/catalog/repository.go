package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/apperr"
)

// Repository define a interface para operações de banco de dados de produtos
type Repository interface {
	// CreateProduct cria um novo produto no banco de dados
	CreateProduct(ctx context.Context, product *Product) error

	// GetProduct busca um produto pelo ID
	GetProduct(ctx context.Context, productID string) (*Product, error)

	// ProductExists verifica se um produto existe
	ProductExists(ctx context.Context, productID string) (bool, error)

	// ListProducts lista todos os produtos
	ListProducts(ctx context.Context) ([]Product, error)

	// UpdateProduct atualiza um produto existente
	UpdateProduct(ctx context.Context, product *Product) error

	// DeleteProduct remove um produto
	DeleteProduct(ctx context.Context, productID string) error

	// DecrementStock decrementa o estoque condicionalmente.
	// Retorna false quando o estoque disponível é menor que qty.
	DecrementStock(ctx context.Context, productID string, qty int) (bool, error)
}

// ProductRepository implementa Repository usando PostgreSQL
type ProductRepository struct {
	db *pgxpool.Pool
}

// NewProductRepository cria uma nova instância de ProductRepository
func NewProductRepository(db *pgxpool.Pool) Repository {
	return &ProductRepository{
		db: db,
	}
}

// CreateProduct cria um novo produto no banco de dados
func (r *ProductRepository) CreateProduct(ctx context.Context, product *Product) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO products (id, name, description, price, category, stock, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, product.ID, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.Image, product.CreatedAt, product.UpdatedAt)
	return err
}

// GetProduct busca um produto pelo ID
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	err := r.db.QueryRow(ctx, `
		SELECT id, name, description, price, category, stock, image, created_at, updated_at
		FROM products WHERE id = $1
	`, productID).Scan(&product.ID, &product.Name, &product.Description, &product.Price,
		&product.Category, &product.Stock, &product.Image, &product.CreatedAt, &product.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ProductExists verifica se um produto existe
func (r *ProductRepository) ProductExists(ctx context.Context, productID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)", productID).Scan(&exists)
	return exists, err
}

// ListProducts lista todos os produtos
func (r *ProductRepository) ListProducts(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, description, price, category, stock, image, created_at, updated_at
		FROM products ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var product Product
		if err := rows.Scan(&product.ID, &product.Name, &product.Description, &product.Price,
			&product.Category, &product.Stock, &product.Image, &product.CreatedAt, &product.UpdatedAt); err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// UpdateProduct atualiza um produto existente
func (r *ProductRepository) UpdateProduct(ctx context.Context, product *Product) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET name = $1, description = $2, price = $3, category = $4, stock = $5, image = $6, updated_at = NOW()
		WHERE id = $7
	`, product.Name, product.Description, product.Price, product.Category,
		product.Stock, product.Image, product.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", product.ID, apperr.ErrNotFound)
	}
	return nil
}

// DeleteProduct remove um produto
func (r *ProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}
	return nil
}

// DecrementStock decrementa o estoque de forma atômica no banco.
// O WHERE stock >= $1 garante que o estoque nunca fica negativo
// mesmo com pedidos concorrentes para o mesmo produto.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID string, qty int) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE products
		SET stock = stock - $1, updated_at = NOW()
		WHERE id = $2 AND stock >= $1
	`, qty, productID)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
