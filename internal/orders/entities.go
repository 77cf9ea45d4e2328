package orders

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus representa os possíveis status de um pedido
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusPaid       OrderStatus = "Paid"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// IsValid verifica se o status pertence à enumeração
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusPaid,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// PaymentStatus representa os possíveis status de um pagamento
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "Pending"
	PaymentStatusSuccess PaymentStatus = "Success"
	PaymentStatusFailed  PaymentStatus = "Failed"
)

// IsTerminal indica se o status de pagamento é final.
// Success e Failed nunca são sobrescritos por uma verificação posterior.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSuccess || s == PaymentStatusFailed
}

// Payment é o sub-registro de pagamento de um pedido.
// É um value type de propriedade exclusiva do Order e só é
// mutado pelas funções de transição do motor de reconciliação.
type Payment struct {
	Reference        string        `json:"reference" db:"payment_reference"`
	Status           PaymentStatus `json:"status" db:"payment_status"`
	Amount           int64         `json:"amount" db:"payment_amount"`
	Currency         string        `json:"currency" db:"payment_currency"`
	GatewayReference string        `json:"gateway_reference,omitempty" db:"gateway_reference"`
	PaidAt           *time.Time    `json:"paid_at,omitempty" db:"paid_at"`
	AuthorizationURL string        `json:"authorization_url,omitempty" db:"authorization_url"`
}

// ShippingAddress representa o endereço de entrega de um pedido
type ShippingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// OrderItem representa um item do pedido.
// UnitPrice é o preço do catálogo congelado no momento da criação.
type OrderItem struct {
	ProductID string `json:"product_id" db:"product_id"`
	Quantity  int    `json:"quantity" db:"quantity"`
	UnitPrice int64  `json:"unit_price" db:"unit_price"`
}

// Order representa um pedido no sistema
type Order struct {
	ID              string          `json:"id" db:"id"`
	UserID          string          `json:"user_id" db:"user_id"`
	Items           []OrderItem     `json:"items"`
	TotalPrice      int64           `json:"total_price" db:"total_price"`
	Status          OrderStatus     `json:"status" db:"status"`
	Payment         Payment         `json:"payment"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`
}

// NewOrder cria um pedido pendente com o pagamento pendente embutido.
// TotalPrice é imutável depois daqui; Payment.Amount sempre igual a ele.
func NewOrder(userID string, items []OrderItem, totalPrice int64, reference string, address ShippingAddress) *Order {
	if address.Country == "" {
		address.Country = "Nigeria"
	}
	return &Order{
		ID:         uuid.New().String(),
		UserID:     userID,
		Items:      items,
		TotalPrice: totalPrice,
		Status:     OrderStatusPending,
		Payment: Payment{
			Reference: reference,
			Status:    PaymentStatusPending,
			Amount:    totalPrice,
			Currency:  "NGN",
		},
		ShippingAddress: address,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}
}

// NewPaymentReference gera um reference único para o pagamento:
// componente monotônico (unix ms) + componente aleatório (fragmento de uuid).
// A coluna UNIQUE no banco é a guarda final contra colisão.
func NewPaymentReference() string {
	random := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), random)
}
