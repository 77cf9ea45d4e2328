package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/apperr"
)

// Repository define a interface para operações de banco de dados de pedidos
type Repository interface {
	// CreateOrder persiste o pedido, os itens e o pagamento embutido
	// em uma única transação.
	CreateOrder(ctx context.Context, order *Order) error

	// GetOrder busca um pedido pelo ID, com itens
	GetOrder(ctx context.Context, orderID string) (*Order, error)

	// GetOrderByReference busca um pedido pelo payment reference
	GetOrderByReference(ctx context.Context, reference string) (*Order, error)

	// ListOrdersByUser lista os pedidos de um usuário, mais recentes primeiro
	ListOrdersByUser(ctx context.Context, userID string) ([]Order, error)

	// ListAllOrders lista todos os pedidos (admin)
	ListAllOrders(ctx context.Context) ([]Order, error)

	// UpdateOrderStatus atualiza o status administrativo de um pedido
	UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error

	// SetAuthorizationURL grava a URL de autorização retornada pelo gateway
	SetAuthorizationURL(ctx context.Context, orderID, url string) error

	// MarkPaymentSucceeded aplica a transição Pending->Success de forma
	// condicional. Retorna true somente quando esta chamada efetuou a
	// transição; false significa que o pagamento já estava terminal.
	MarkPaymentSucceeded(ctx context.Context, reference, gatewayReference string, paidAt time.Time) (bool, error)

	// MarkPaymentFailed aplica a transição Pending->Failed de forma
	// condicional, sem tocar no status do pedido.
	MarkPaymentFailed(ctx context.Context, reference string) (bool, error)
}

// OrderRepository implementa Repository usando PostgreSQL
type OrderRepository struct {
	db *pgxpool.Pool
}

// NewOrderRepository cria uma nova instância de OrderRepository
func NewOrderRepository(db *pgxpool.Pool) Repository {
	return &OrderRepository{
		db: db,
	}
}

const orderColumns = `
	id, user_id, total_price, status,
	payment_reference, payment_status, payment_amount, payment_currency,
	gateway_reference, paid_at, authorization_url,
	ship_street, ship_city, ship_state, ship_zip, ship_country,
	created_at, updated_at
`

func scanOrder(row pgx.Row) (*Order, error) {
	var order Order
	var gatewayReference, authorizationURL *string
	err := row.Scan(
		&order.ID, &order.UserID, &order.TotalPrice, &order.Status,
		&order.Payment.Reference, &order.Payment.Status, &order.Payment.Amount, &order.Payment.Currency,
		&gatewayReference, &order.Payment.PaidAt, &authorizationURL,
		&order.ShippingAddress.Street, &order.ShippingAddress.City, &order.ShippingAddress.State,
		&order.ShippingAddress.ZipCode, &order.ShippingAddress.Country,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if gatewayReference != nil {
		order.Payment.GatewayReference = *gatewayReference
	}
	if authorizationURL != nil {
		order.Payment.AuthorizationURL = *authorizationURL
	}
	return &order, nil
}

// CreateOrder persiste o pedido e os itens em uma única transação
func (r *OrderRepository) CreateOrder(ctx context.Context, order *Order) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (
			id, user_id, total_price, status,
			payment_reference, payment_status, payment_amount, payment_currency,
			ship_street, ship_city, ship_state, ship_zip, ship_country,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`, order.ID, order.UserID, order.TotalPrice, order.Status,
		order.Payment.Reference, order.Payment.Status, order.Payment.Amount, order.Payment.Currency,
		order.ShippingAddress.Street, order.ShippingAddress.City, order.ShippingAddress.State,
		order.ShippingAddress.ZipCode, order.ShippingAddress.Country,
		order.CreatedAt, order.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)
		`, order.ID, item.ProductID, item.Quantity, item.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}
	return nil
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID string) ([]OrderItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT product_id, quantity, unit_price
		FROM order_items WHERE order_id = $1
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []OrderItem
	for rows.Next() {
		var item OrderItem
		if err := rows.Scan(&item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetOrder busca um pedido pelo ID, com itens
func (r *OrderRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	order.Items, err = r.loadItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByReference busca um pedido pelo payment reference
func (r *OrderRepository) GetOrderByReference(ctx context.Context, reference string) (*Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE payment_reference = $1`, reference))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("payment reference %s: %w", reference, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}

	order.Items, err = r.loadItems(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) list(ctx context.Context, query string, args ...interface{}) ([]Order, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		result[i].Items, err = r.loadItems(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ListOrdersByUser lista os pedidos de um usuário, mais recentes primeiro
func (r *OrderRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`, userID)
}

// ListAllOrders lista todos os pedidos (admin)
func (r *OrderRepository) ListAllOrders(ctx context.Context) ([]Order, error) {
	return r.list(ctx,
		`SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// UpdateOrderStatus atualiza o status administrativo de um pedido
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`, status, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	return nil
}

// SetAuthorizationURL grava a URL de autorização retornada pelo gateway
func (r *OrderRepository) SetAuthorizationURL(ctx context.Context, orderID, url string) error {
	_, err := r.db.Exec(ctx, `
		UPDATE orders
		SET authorization_url = $1, updated_at = NOW()
		WHERE id = $2
	`, url, orderID)
	return err
}

// MarkPaymentSucceeded aplica Pending->Success com um único UPDATE
// condicional. RowsAffected decide quem venceu a corrida entre o
// endpoint de verificação e o webhook: só o vencedor decrementa
// estoque e dispara notificação.
func (r *OrderRepository) MarkPaymentSucceeded(ctx context.Context, reference, gatewayReference string, paidAt time.Time) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_status = $1, status = $2,
		    gateway_reference = $3, paid_at = $4, updated_at = NOW()
		WHERE payment_reference = $5 AND payment_status = $6
	`, PaymentStatusSuccess, OrderStatusPaid, gatewayReference, paidAt, reference, PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment succeeded: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// MarkPaymentFailed aplica Pending->Failed; o status do pedido não muda
func (r *OrderRepository) MarkPaymentFailed(ctx context.Context, reference string) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE orders
		SET payment_status = $1, updated_at = NOW()
		WHERE payment_reference = $2 AND payment_status = $3
	`, PaymentStatusFailed, reference, PaymentStatusPending)
	if err != nil {
		return false, fmt.Errorf("failed to mark payment failed: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
