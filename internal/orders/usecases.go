package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/catalog"
	"storefront/internal/mailer"
	"storefront/internal/paystack"
	"storefront/internal/users"
)

// CatalogStore é a visão que o motor de pedidos tem do catálogo
type CatalogStore interface {
	GetProduct(ctx context.Context, productID string) (*catalog.Product, error)
	DecrementStock(ctx context.Context, productID string, qty int) (bool, error)
}

// UserStore é a visão que o motor de pedidos tem dos usuários
type UserStore interface {
	GetUser(ctx context.Context, userID string) (*users.User, error)
}

// OrderUseCase é o motor de reconciliação de pedidos: orquestra
// catálogo, ledger, gateway e notificador para mover um pedido pelo
// ciclo de vida com decremento de estoque no máximo uma vez.
type OrderUseCase struct {
	repository Repository
	catalog    CatalogStore
	users      UserStore
	gateway    paystack.Gateway
	notifier   mailer.Notifier
	logger     *zap.Logger
	tracer     trace.Tracer

	ordersCreated      metric.Int64Counter
	paymentsReconciled metric.Int64Counter
}

// NewOrderUseCase cria uma nova instância de OrderUseCase
func NewOrderUseCase(
	repository Repository,
	catalogStore CatalogStore,
	userStore UserStore,
	gateway paystack.Gateway,
	notifier mailer.Notifier,
	logger *zap.Logger,
) *OrderUseCase {
	meter := otel.Meter("storefront/orders")
	ordersCreated, _ := meter.Int64Counter("orders_created_total")
	paymentsReconciled, _ := meter.Int64Counter("payments_reconciled_total")

	return &OrderUseCase{
		repository:         repository,
		catalog:            catalogStore,
		users:              userStore,
		gateway:            gateway,
		notifier:           notifier,
		logger:             logger,
		tracer:             otel.Tracer("storefront/orders"),
		ordersCreated:      ordersCreated,
		paymentsReconciled: paymentsReconciled,
	}
}

// LineItem representa um item da requisição de checkout
type LineItem struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// CreateOrderInput representa a requisição de criação de pedido
type CreateOrderInput struct {
	Items           []LineItem      `json:"items" binding:"required"`
	ShippingAddress ShippingAddress `json:"shipping_address"`
}

// CreateOrderResult agrega o pedido criado e os dados de redirecionamento
type CreateOrderResult struct {
	Order   *Order                     `json:"order"`
	Payment *paystack.InitializeResult `json:"payment"`
}

// CreateOrder valida o checkout, congela o preço total, persiste o
// pedido com pagamento pendente e inicializa a transação no gateway.
// A checagem de estoque aqui é apenas advisória: o decremento
// autoritativo acontece na confirmação do pagamento.
func (uc *OrderUseCase) CreateOrder(ctx context.Context, userID string, input CreateOrderInput) (*CreateOrderResult, error) {
	ctx, span := uc.tracer.Start(ctx, "create_order")
	defer span.End()
	span.SetAttributes(attribute.String("user_id", userID))

	if len(input.Items) == 0 {
		return nil, fmt.Errorf("order items are required: %w", apperr.ErrValidation)
	}

	var totalPrice int64
	items := make([]OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be greater than zero: %w", apperr.ErrValidation)
		}

		product, err := uc.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, fmt.Errorf("insufficient stock for product %s: %w", product.Name, apperr.ErrInsufficientStock)
		}

		totalPrice += product.Price * int64(item.Quantity)
		items = append(items, OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price,
		})
	}

	user, err := uc.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	reference := NewPaymentReference()
	order := NewOrder(userID, items, totalPrice, reference, input.ShippingAddress)

	if err := uc.repository.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to persist order: %w", err)
	}

	span.SetAttributes(
		attribute.String("order_id", order.ID),
		attribute.String("payment_reference", reference),
		attribute.Int64("total_price", totalPrice),
	)

	// Falha do gateway não desfaz o pedido: ele permanece Pending
	// e a inicialização pode ser repetida por um fluxo de recuperação.
	init, err := uc.gateway.Initialize(ctx, user.Email, totalPrice, reference, map[string]string{
		"order_id": order.ID,
		"user_id":  userID,
	})
	if err != nil {
		uc.logger.Error("failed to initialize payment, order kept pending",
			zap.String("order_id", order.ID),
			zap.String("reference", reference),
			zap.Error(err))
		span.RecordError(err)
		return nil, err
	}

	if err := uc.repository.SetAuthorizationURL(ctx, order.ID, init.AuthorizationURL); err != nil {
		uc.logger.Error("failed to store authorization url",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
	order.Payment.AuthorizationURL = init.AuthorizationURL

	uc.ordersCreated.Add(ctx, 1)
	uc.logger.Info("order created and payment initialized",
		zap.String("order_id", order.ID),
		zap.String("reference", reference),
		zap.Int64("total_price", totalPrice))

	return &CreateOrderResult{Order: order, Payment: init}, nil
}

// ReconcilePayment confirma com o gateway o desfecho real de um
// pagamento e aplica o resultado exatamente uma vez. É o caminho
// compartilhado entre o endpoint de verificação e o webhook; a
// idempotência vem do UPDATE condicional em payment_status.
func (uc *OrderUseCase) ReconcilePayment(ctx context.Context, reference string) (*Order, error) {
	ctx, span := uc.tracer.Start(ctx, "reconcile_payment")
	defer span.End()
	span.SetAttributes(attribute.String("payment_reference", reference))

	order, err := uc.repository.GetOrderByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	if order.Payment.Status.IsTerminal() {
		// verificação repetida (webhook + polling): no-op idempotente
		span.SetAttributes(attribute.String("result", "already_terminal"))
		return order, nil
	}

	result, err := uc.gateway.Verify(ctx, reference)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	switch result.Status {
	case paystack.StatusSuccess:
		paidAt := time.Now()
		applied, err := uc.repository.MarkPaymentSucceeded(ctx, reference, result.GatewayReference, paidAt)
		if err != nil {
			return nil, err
		}
		if !applied {
			// outro gatilho venceu a corrida entre a leitura e o UPDATE;
			// devolve o estado que o vencedor gravou
			span.SetAttributes(attribute.String("result", "success"), attribute.Bool("applied", false))
			return uc.repository.GetOrderByReference(ctx, reference)
		}

		uc.settleStock(ctx, order)
		uc.sendPaymentConfirmation(ctx, order)
		uc.paymentsReconciled.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))

		order.Status = OrderStatusPaid
		order.Payment.Status = PaymentStatusSuccess
		order.Payment.GatewayReference = result.GatewayReference
		order.Payment.PaidAt = &paidAt
		span.SetAttributes(attribute.String("result", "success"), attribute.Bool("applied", true))
		return order, nil

	case paystack.StatusFailed:
		applied, err := uc.repository.MarkPaymentFailed(ctx, reference)
		if err != nil {
			return nil, err
		}
		if !applied {
			span.SetAttributes(attribute.String("result", "failed"), attribute.Bool("applied", false))
			return uc.repository.GetOrderByReference(ctx, reference)
		}
		uc.paymentsReconciled.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "failed")))

		// o pedido não é cancelado implicitamente: permanece Pending
		order.Payment.Status = PaymentStatusFailed
		span.SetAttributes(attribute.String("result", "failed"), attribute.Bool("applied", true))
		return order, nil

	default:
		// status não terminal no gateway: nada muda, o chamador pode tentar de novo
		span.SetAttributes(attribute.String("result", "pending"))
		return order, nil
	}
}

// settleStock decrementa o estoque de cada item do pedido confirmado.
// Cada item é um decremento condicional independente: uma falha é
// logada e não interrompe os demais itens.
func (uc *OrderUseCase) settleStock(ctx context.Context, order *Order) {
	for _, item := range order.Items {
		ok, err := uc.catalog.DecrementStock(ctx, item.ProductID, item.Quantity)
		if err != nil {
			uc.logger.Error("stock decrement failed",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Error(err))
			continue
		}
		if !ok {
			uc.logger.Warn("stock decrement skipped, insufficient stock at settlement",
				zap.String("order_id", order.ID),
				zap.String("product_id", item.ProductID),
				zap.Int("quantity", item.Quantity))
		}
	}
}

func (uc *OrderUseCase) sendPaymentConfirmation(ctx context.Context, order *Order) {
	user, err := uc.users.GetUser(ctx, order.UserID)
	if err != nil {
		uc.logger.Warn("skipping confirmation email, user lookup failed",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return
	}

	subject := "Payment Confirmation"
	text := fmt.Sprintf("Your payment for order #%s has been confirmed.", order.ID)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Payment Confirmation</h2>
			<p>Hello %s,</p>
			<p>Your payment for order #%s has been confirmed.</p>
			<p><strong>Total Amount:</strong> &#8358;%d</p>
			<p><strong>Payment Reference:</strong> %s</p>
			<p>Thank you for your purchase!</p>
		</div>
	`, user.Username, order.ID, order.TotalPrice, order.Payment.Reference)

	// falha de e-mail nunca falha a reconciliação
	if err := uc.notifier.Send(user.Email, subject, text, html); err != nil {
		uc.logger.Warn("failed to send confirmation email",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// webhookEvent é o payload de eventos do Paystack
type webhookEvent struct {
	Event string `json:"event"`
	Data  struct {
		Reference string `json:"reference"`
	} `json:"data"`
}

// HandleWebhook autentica o payload bruto do webhook e reconcilia o
// pagamento referenciado. Eventos desconhecidos são aceitos e ignorados.
func (uc *OrderUseCase) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if !uc.gateway.VerifySignature(payload, signature) {
		return fmt.Errorf("invalid webhook signature: %w", apperr.ErrAuthentication)
	}

	var event webhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return fmt.Errorf("malformed webhook payload: %w", apperr.ErrValidation)
	}

	switch event.Event {
	case "charge.success", "charge.failed":
		if _, err := uc.ReconcilePayment(ctx, event.Data.Reference); err != nil {
			// referência desconhecida não é erro do remetente: o gateway
			// pode notificar pagamentos criados fora deste sistema
			if errors.Is(err, apperr.ErrNotFound) {
				uc.logger.Warn("webhook for unknown payment reference",
					zap.String("event", event.Event),
					zap.String("reference", event.Data.Reference))
				return nil
			}
			return err
		}
		return nil
	default:
		uc.logger.Info("ignoring webhook event", zap.String("event", event.Event))
		return nil
	}
}

// UpdateStatus aplica uma mutação administrativa de status e notifica
// o dono do pedido. A transição é deliberadamente permissiva: apenas a
// enumeração é validada.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, orderID string, status OrderStatus) (*Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status %q: %w", status, apperr.ErrValidation)
	}

	if err := uc.repository.UpdateOrderStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	uc.sendStatusUpdate(ctx, order, status)
	return order, nil
}

func (uc *OrderUseCase) sendStatusUpdate(ctx context.Context, order *Order, status OrderStatus) {
	user, err := uc.users.GetUser(ctx, order.UserID)
	if err != nil {
		uc.logger.Warn("skipping status email, user lookup failed",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return
	}

	subject := "Order Status Update"
	text := fmt.Sprintf("Your order #%s status has been updated to %s.", order.ID, status)
	html := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">Order Status Update</h2>
			<p>Hello %s,</p>
			<p>Your order #%s status has been updated to <strong>%s</strong>.</p>
			<p>Thank you for your patience!</p>
		</div>
	`, user.Username, order.ID, status)

	if err := uc.notifier.Send(user.Email, subject, text, html); err != nil {
		uc.logger.Warn("failed to send status email",
			zap.String("order_id", order.ID),
			zap.Error(err))
	}
}

// GetOrder busca um pedido pelo ID, restrito ao dono
func (uc *OrderUseCase) GetOrder(ctx context.Context, orderID, userID string) (*Order, error) {
	order, err := uc.repository.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("order %s: %w", orderID, apperr.ErrNotFound)
	}
	return order, nil
}

// ListUserOrders lista os pedidos do usuário
func (uc *OrderUseCase) ListUserOrders(ctx context.Context, userID string) ([]Order, error) {
	return uc.repository.ListOrdersByUser(ctx, userID)
}

// ListAllOrders lista todos os pedidos (admin)
func (uc *OrderUseCase) ListAllOrders(ctx context.Context) ([]Order, error) {
	return uc.repository.ListAllOrders(ctx)
}
