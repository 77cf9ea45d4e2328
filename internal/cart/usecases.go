package cart

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"storefront/internal/apperr"
)

// ProductChecker valida a existência de um produto no catálogo
type ProductChecker interface {
	ProductExists(ctx context.Context, productID string) (bool, error)
}

// CartUseCase contém a lógica de negócio do carrinho
type CartUseCase struct {
	repository Repository
	products   ProductChecker
	logger     *zap.Logger
}

// NewCartUseCase cria uma nova instância de CartUseCase
func NewCartUseCase(repository Repository, products ProductChecker, logger *zap.Logger) *CartUseCase {
	return &CartUseCase{
		repository: repository,
		products:   products,
		logger:     logger,
	}
}

// GetCart retorna o carrinho do usuário
func (uc *CartUseCase) GetCart(ctx context.Context, userID string) (*Cart, error) {
	return uc.repository.GetCart(ctx, userID)
}

// AddItem adiciona (ou sobrescreve) um item no carrinho
func (uc *CartUseCase) AddItem(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		return fmt.Errorf("quantity must be greater than zero: %w", apperr.ErrValidation)
	}

	exists, err := uc.products.ProductExists(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to check product: %w", err)
	}
	if !exists {
		return fmt.Errorf("product %s: %w", productID, apperr.ErrNotFound)
	}

	if err := uc.repository.SetItem(ctx, userID, productID, quantity); err != nil {
		return err
	}

	uc.logger.Info("cart item set",
		zap.String("user_id", userID),
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

// RemoveItem remove um item do carrinho
func (uc *CartUseCase) RemoveItem(ctx context.Context, userID, productID string) error {
	return uc.repository.RemoveItem(ctx, userID, productID)
}

// ClearCart esvazia o carrinho do usuário
func (uc *CartUseCase) ClearCart(ctx context.Context, userID string) error {
	return uc.repository.ClearCart(ctx, userID)
}
