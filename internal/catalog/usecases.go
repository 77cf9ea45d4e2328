package catalog

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/apperr"
)

// ProductUseCase contém a lógica de negócio do catálogo de produtos
type ProductUseCase struct {
	repository Repository
	logger     *zap.Logger
}

// NewProductUseCase cria uma nova instância de ProductUseCase
func NewProductUseCase(repository Repository, logger *zap.Logger) *ProductUseCase {
	return &ProductUseCase{
		repository: repository,
		logger:     logger,
	}
}

// CreateProductInput representa os dados de criação de um produto
type CreateProductInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int64  `json:"price" binding:"required,gte=0"`
	Category    string `json:"category"`
	Stock       int    `json:"stock" binding:"gte=0"`
	Image       string `json:"image"`
}

// CreateProduct cria um novo produto no catálogo
func (uc *ProductUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*Product, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("product name is required: %w", apperr.ErrValidation)
	}
	if input.Price < 0 {
		return nil, fmt.Errorf("product price must be non-negative: %w", apperr.ErrValidation)
	}

	product := NewProduct(input.Name, input.Description, input.Price, input.Category, input.Stock, input.Image)
	if err := uc.repository.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	uc.logger.Info("product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name))
	return product, nil
}

// GetProduct busca um produto pelo ID
func (uc *ProductUseCase) GetProduct(ctx context.Context, productID string) (*Product, error) {
	return uc.repository.GetProduct(ctx, productID)
}

// ListProducts lista todos os produtos do catálogo
func (uc *ProductUseCase) ListProducts(ctx context.Context) ([]Product, error) {
	return uc.repository.ListProducts(ctx)
}

// UpdateProduct atualiza os dados de um produto existente
func (uc *ProductUseCase) UpdateProduct(ctx context.Context, productID string, input CreateProductInput) (*Product, error) {
	product, err := uc.repository.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Category = input.Category
	product.Stock = input.Stock
	product.Image = input.Image

	if err := uc.repository.UpdateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	return product, nil
}

// DeleteProduct remove um produto do catálogo
func (uc *ProductUseCase) DeleteProduct(ctx context.Context, productID string) error {
	if err := uc.repository.DeleteProduct(ctx, productID); err != nil {
		return err
	}
	uc.logger.Info("product deleted", zap.String("product_id", productID))
	return nil
}
