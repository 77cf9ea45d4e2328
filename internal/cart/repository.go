package cart

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Repository define a interface para o armazenamento do carrinho
type Repository interface {
	// GetCart retorna o carrinho completo do usuário
	GetCart(ctx context.Context, userID string) (*Cart, error)

	// SetItem grava a quantidade de um produto no carrinho
	SetItem(ctx context.Context, userID, productID string, quantity int) error

	// RemoveItem remove um produto do carrinho
	RemoveItem(ctx context.Context, userID, productID string) error

	// ClearCart esvazia o carrinho do usuário
	ClearCart(ctx context.Context, userID string) error
}

// RedisCartRepository implementa Repository usando Redis.
// Cada carrinho é um hash cart:<userID> com productID -> quantidade.
type RedisCartRepository struct {
	client *redis.Client
}

// NewCartRepository cria uma nova instância de RedisCartRepository
func NewCartRepository(client *redis.Client) Repository {
	return &RedisCartRepository{
		client: client,
	}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// GetCart retorna o carrinho completo do usuário
func (r *RedisCartRepository) GetCart(ctx context.Context, userID string) (*Cart, error) {
	entries, err := r.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	c := &Cart{UserID: userID, Items: make([]Item, 0, len(entries))}
	for productID, raw := range entries {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart entry for product %s: %w", productID, err)
		}
		c.Items = append(c.Items, Item{ProductID: productID, Quantity: qty})
	}

	// ordenação estável para respostas determinísticas
	sort.Slice(c.Items, func(i, j int) bool { return c.Items[i].ProductID < c.Items[j].ProductID })
	return c, nil
}

// SetItem grava a quantidade de um produto no carrinho
func (r *RedisCartRepository) SetItem(ctx context.Context, userID, productID string, quantity int) error {
	if err := r.client.HSet(ctx, cartKey(userID), productID, quantity).Err(); err != nil {
		return fmt.Errorf("failed to set cart item: %w", err)
	}
	return nil
}

// RemoveItem remove um produto do carrinho
func (r *RedisCartRepository) RemoveItem(ctx context.Context, userID, productID string) error {
	if err := r.client.HDel(ctx, cartKey(userID), productID).Err(); err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	return nil
}

// ClearCart esvazia o carrinho do usuário
func (r *RedisCartRepository) ClearCart(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cartKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}
