package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"storefront/internal/apperr"
	"storefront/internal/catalog"
	"storefront/internal/paystack"
	"storefront/internal/users"
)

// MockRepository simula o Repository de pedidos
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, order *Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) GetOrderByReference(ctx context.Context, reference string) (*Order, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Order), args.Error(1)
}

func (m *MockRepository) ListOrdersByUser(ctx context.Context, userID string) ([]Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) ListAllOrders(ctx context.Context) ([]Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Order), args.Error(1)
}

func (m *MockRepository) UpdateOrderStatus(ctx context.Context, orderID string, status OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *MockRepository) SetAuthorizationURL(ctx context.Context, orderID, url string) error {
	args := m.Called(ctx, orderID, url)
	return args.Error(0)
}

func (m *MockRepository) MarkPaymentSucceeded(ctx context.Context, reference, gatewayReference string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, reference, gatewayReference, paidAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) MarkPaymentFailed(ctx context.Context, reference string) (bool, error) {
	args := m.Called(ctx, reference)
	return args.Bool(0), args.Error(1)
}

// MockCatalog simula o CatalogStore
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetProduct(ctx context.Context, productID string) (*catalog.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockCatalog) DecrementStock(ctx context.Context, productID string, qty int) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

// MockUsers simula o UserStore
type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) GetUser(ctx context.Context, userID string) (*users.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*users.User), args.Error(1)
}

// MockGateway simula o gateway de pagamento
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Initialize(ctx context.Context, email string, amount int64, reference string, metadata map[string]string) (*paystack.InitializeResult, error) {
	args := m.Called(ctx, email, amount, reference, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.InitializeResult), args.Error(1)
}

func (m *MockGateway) Verify(ctx context.Context, reference string) (*paystack.VerifyResult, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paystack.VerifyResult), args.Error(1)
}

func (m *MockGateway) VerifySignature(payload []byte, signature string) bool {
	args := m.Called(payload, signature)
	return args.Bool(0)
}

// MockNotifier simula o Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(to, subject, text, html string) error {
	args := m.Called(to, subject, text, html)
	return args.Error(0)
}

type fixtures struct {
	repo     *MockRepository
	catalog  *MockCatalog
	users    *MockUsers
	gateway  *MockGateway
	notifier *MockNotifier
	useCase  *OrderUseCase
}

func newFixtures() *fixtures {
	f := &fixtures{
		repo:     new(MockRepository),
		catalog:  new(MockCatalog),
		users:    new(MockUsers),
		gateway:  new(MockGateway),
		notifier: new(MockNotifier),
	}
	f.useCase = NewOrderUseCase(f.repo, f.catalog, f.users, f.gateway, f.notifier, zap.NewNop())
	return f
}

func pendingOrder(reference string) *Order {
	return &Order{
		ID:     "order-1",
		UserID: "user-1",
		Items: []OrderItem{
			{ProductID: "p1", Quantity: 2, UnitPrice: 1000},
		},
		TotalPrice: 2000,
		Status:     OrderStatusPending,
		Payment: Payment{
			Reference: reference,
			Status:    PaymentStatusPending,
			Amount:    2000,
			Currency:  "NGN",
		},
	}
}

func TestCreateOrder_ComputesTotalAndInitializesPayment(t *testing.T) {
	// Arrange
	f := newFixtures()
	ctx := context.Background()

	f.catalog.On("GetProduct", mock.Anything, "p1").
		Return(&catalog.Product{ID: "p1", Name: "Widget", Price: 1000, Stock: 5}, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.gateway.On("Initialize", mock.Anything, "ada@example.com", int64(2000), mock.AnythingOfType("string"), mock.Anything).
		Return(&paystack.InitializeResult{AuthorizationURL: "https://checkout.paystack.com/abc", AccessCode: "abc"}, nil)
	f.repo.On("SetAuthorizationURL", mock.Anything, mock.AnythingOfType("string"), "https://checkout.paystack.com/abc").Return(nil)

	// Act
	result, err := f.useCase.CreateOrder(ctx, "user-1", CreateOrderInput{
		Items: []LineItem{{ProductID: "p1", Quantity: 2}},
	})

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, int64(2000), result.Order.TotalPrice)
	assert.Equal(t, int64(2000), result.Order.Payment.Amount)
	assert.Equal(t, PaymentStatusPending, result.Order.Payment.Status)
	assert.Equal(t, OrderStatusPending, result.Order.Status)
	assert.NotEmpty(t, result.Order.Payment.Reference)
	assert.Equal(t, "https://checkout.paystack.com/abc", result.Order.Payment.AuthorizationURL)
	assert.Equal(t, "abc", result.Payment.AccessCode)
	f.repo.AssertExpectations(t)
	f.gateway.AssertExpectations(t)
}

func TestCreateOrder_EmptyItems(t *testing.T) {
	// Arrange
	f := newFixtures()

	// Act
	result, err := f.useCase.CreateOrder(context.Background(), "user-1", CreateOrderInput{})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrder_InsufficientStock(t *testing.T) {
	// Arrange
	f := newFixtures()

	f.catalog.On("GetProduct", mock.Anything, "p1").
		Return(&catalog.Product{ID: "p1", Name: "Widget", Price: 1000, Stock: 5}, nil)

	// Act
	result, err := f.useCase.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items: []LineItem{{ProductID: "p1", Quantity: 10}},
	})

	// Assert: nada persistido
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperr.ErrInsufficientStock)
	f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
	f.gateway.AssertNotCalled(t, "Initialize", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateOrder_ProductNotFound(t *testing.T) {
	// Arrange
	f := newFixtures()

	f.catalog.On("GetProduct", mock.Anything, "missing").
		Return(nil, apperr.ErrNotFound)

	// Act
	result, err := f.useCase.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items: []LineItem{{ProductID: "missing", Quantity: 1}},
	})

	// Assert
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.repo.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything)
}

func TestCreateOrder_GatewayFailureKeepsOrderPending(t *testing.T) {
	// Arrange
	f := newFixtures()

	f.catalog.On("GetProduct", mock.Anything, "p1").
		Return(&catalog.Product{ID: "p1", Name: "Widget", Price: 1000, Stock: 5}, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.repo.On("CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order")).Return(nil)
	f.gateway.On("Initialize", mock.Anything, "ada@example.com", int64(1000), mock.AnythingOfType("string"), mock.Anything).
		Return(nil, apperr.ErrGateway)

	// Act
	result, err := f.useCase.CreateOrder(context.Background(), "user-1", CreateOrderInput{
		Items: []LineItem{{ProductID: "p1", Quantity: 1}},
	})

	// Assert: o pedido foi persistido mesmo com a falha do gateway
	assert.Nil(t, result)
	assert.ErrorIs(t, err, apperr.ErrGateway)
	f.repo.AssertCalled(t, "CreateOrder", mock.Anything, mock.AnythingOfType("*orders.Order"))
	f.repo.AssertNotCalled(t, "SetAuthorizationURL", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePayment_SuccessDecrementsStockAndNotifies(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil)
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusSuccess, GatewayReference: "PSK-1"}, nil)
	f.repo.On("MarkPaymentSucceeded", mock.Anything, ref, "PSK-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)
	f.catalog.On("DecrementStock", mock.Anything, "p1", 2).Return(true, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.notifier.On("Send", "ada@example.com", "Payment Confirmation", mock.Anything, mock.Anything).Return(nil)

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPaid, order.Status)
	assert.Equal(t, PaymentStatusSuccess, order.Payment.Status)
	assert.Equal(t, "PSK-1", order.Payment.GatewayReference)
	assert.NotNil(t, order.Payment.PaidAt)
	f.catalog.AssertNumberOfCalls(t, "DecrementStock", 1)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestReconcilePayment_PartialStockFailureDoesNotAbort(t *testing.T) {
	// Arrange: um item perde a corrida pelo estoque, outro falha no banco
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	order := pendingOrder(ref)
	order.Items = []OrderItem{
		{ProductID: "p1", Quantity: 2, UnitPrice: 1000},
		{ProductID: "p2", Quantity: 1, UnitPrice: 500},
		{ProductID: "p3", Quantity: 3, UnitPrice: 200},
	}

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(order, nil)
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusSuccess, GatewayReference: "PSK-1"}, nil)
	f.repo.On("MarkPaymentSucceeded", mock.Anything, ref, "PSK-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)
	f.catalog.On("DecrementStock", mock.Anything, "p1", 2).Return(false, nil)
	f.catalog.On("DecrementStock", mock.Anything, "p2", 1).Return(false, assert.AnError)
	f.catalog.On("DecrementStock", mock.Anything, "p3", 3).Return(true, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.notifier.On("Send", "ada@example.com", "Payment Confirmation", mock.Anything, mock.Anything).Return(nil)

	// Act
	got, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: a reconciliação segue, todos os itens são tentados
	// e a confirmação ainda é enviada
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusPaid, got.Status)
	f.catalog.AssertNumberOfCalls(t, "DecrementStock", 3)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestReconcilePayment_GatewayErrorLeavesStateUntouched(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil)
	f.gateway.On("Verify", mock.Anything, ref).Return(nil, apperr.ErrGateway)

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: nenhuma transição é aplicada, o chamador pode tentar de novo
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperr.ErrGateway)
	f.repo.AssertNotCalled(t, "MarkPaymentSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "MarkPaymentFailed", mock.Anything, mock.Anything)
	f.catalog.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePayment_TwiceDecrementsOnce(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	paid := pendingOrder(ref)
	paid.Status = OrderStatusPaid
	paid.Payment.Status = PaymentStatusSuccess

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil).Once()
	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(paid, nil).Once()
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusSuccess, GatewayReference: "PSK-1"}, nil)
	f.repo.On("MarkPaymentSucceeded", mock.Anything, ref, "PSK-1", mock.AnythingOfType("time.Time")).
		Return(true, nil)
	f.catalog.On("DecrementStock", mock.Anything, "p1", 2).Return(true, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.notifier.On("Send", "ada@example.com", "Payment Confirmation", mock.Anything, mock.Anything).Return(nil)

	// Act: polling e webhook disparando para o mesmo reference
	first, err1 := f.useCase.ReconcilePayment(context.Background(), ref)
	second, err2 := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: exatamente um decremento de estoque e uma notificação
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, OrderStatusPaid, first.Status)
	assert.Equal(t, OrderStatusPaid, second.Status)
	f.catalog.AssertNumberOfCalls(t, "DecrementStock", 1)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
	f.gateway.AssertNumberOfCalls(t, "Verify", 1)
}

func TestReconcilePayment_ConditionalUpdateLostRace(t *testing.T) {
	// Arrange: outro gatilho venceu a corrida entre a leitura e o UPDATE
	// e marcou o pagamento como Failed
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	failed := pendingOrder(ref)
	failed.Payment.Status = PaymentStatusFailed

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil).Once()
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusSuccess, GatewayReference: "PSK-1"}, nil)
	f.repo.On("MarkPaymentSucceeded", mock.Anything, ref, "PSK-1", mock.AnythingOfType("time.Time")).
		Return(false, nil)
	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(failed, nil).Once()

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: o perdedor devolve o estado gravado pelo vencedor,
	// não decrementa estoque nem notifica
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusFailed, order.Payment.Status)
	assert.Equal(t, OrderStatusPending, order.Status)
	f.catalog.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
	f.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePayment_UnknownReference(t *testing.T) {
	// Arrange
	f := newFixtures()

	f.repo.On("GetOrderByReference", mock.Anything, "nope").Return(nil, apperr.ErrNotFound)

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), "nope")

	// Assert
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
	f.gateway.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
}

func TestReconcilePayment_FailureLeavesOrderPending(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil)
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusFailed}, nil)
	f.repo.On("MarkPaymentFailed", mock.Anything, ref).Return(true, nil)

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: pagamento Failed, pedido não é cancelado implicitamente
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusFailed, order.Payment.Status)
	assert.Equal(t, OrderStatusPending, order.Status)
	f.catalog.AssertNotCalled(t, "DecrementStock", mock.Anything, mock.Anything, mock.Anything)
}

func TestReconcilePayment_NonTerminalGatewayStatus(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"

	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(pendingOrder(ref), nil)
	f.gateway.On("Verify", mock.Anything, ref).
		Return(&paystack.VerifyResult{Status: paystack.StatusPending}, nil)

	// Act
	order, err := f.useCase.ReconcilePayment(context.Background(), ref)

	// Assert: nada muda, o chamador pode tentar de novo
	assert.NoError(t, err)
	assert.Equal(t, PaymentStatusPending, order.Payment.Status)
	f.repo.AssertNotCalled(t, "MarkPaymentSucceeded", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.repo.AssertNotCalled(t, "MarkPaymentFailed", mock.Anything, mock.Anything)
}

func TestHandleWebhook_InvalidSignature(t *testing.T) {
	// Arrange
	f := newFixtures()
	payload := []byte(`{"event":"charge.success","data":{"reference":"ref-1"}}`)

	f.gateway.On("VerifySignature", payload, "bad-signature").Return(false)

	// Act
	err := f.useCase.HandleWebhook(context.Background(), payload, "bad-signature")

	// Assert: o motor de reconciliação nunca é invocado
	assert.ErrorIs(t, err, apperr.ErrAuthentication)
	f.repo.AssertNotCalled(t, "GetOrderByReference", mock.Anything, mock.Anything)
}

func TestHandleWebhook_ChargeSuccessReconciles(t *testing.T) {
	// Arrange
	f := newFixtures()
	ref := "order_1700000000000_abc123def456"
	payload := []byte(`{"event":"charge.success","data":{"reference":"` + ref + `"}}`)

	paid := pendingOrder(ref)
	paid.Status = OrderStatusPaid
	paid.Payment.Status = PaymentStatusSuccess

	f.gateway.On("VerifySignature", payload, "good").Return(true)
	f.repo.On("GetOrderByReference", mock.Anything, ref).Return(paid, nil)

	// Act
	err := f.useCase.HandleWebhook(context.Background(), payload, "good")

	// Assert
	assert.NoError(t, err)
	f.repo.AssertCalled(t, "GetOrderByReference", mock.Anything, ref)
}

func TestHandleWebhook_UnknownEventIgnored(t *testing.T) {
	// Arrange
	f := newFixtures()
	payload := []byte(`{"event":"subscription.create","data":{"reference":"whatever"}}`)

	f.gateway.On("VerifySignature", payload, "good").Return(true)

	// Act
	err := f.useCase.HandleWebhook(context.Background(), payload, "good")

	// Assert
	assert.NoError(t, err)
	f.repo.AssertNotCalled(t, "GetOrderByReference", mock.Anything, mock.Anything)
}

func TestHandleWebhook_UnknownReferenceAccepted(t *testing.T) {
	// Arrange: o gateway pode notificar pagamentos de fora deste sistema
	f := newFixtures()
	payload := []byte(`{"event":"charge.success","data":{"reference":"foreign"}}`)

	f.gateway.On("VerifySignature", payload, "good").Return(true)
	f.repo.On("GetOrderByReference", mock.Anything, "foreign").Return(nil, apperr.ErrNotFound)

	// Act
	err := f.useCase.HandleWebhook(context.Background(), payload, "good")

	// Assert
	assert.NoError(t, err)
}

func TestUpdateStatus_InvalidStatus(t *testing.T) {
	// Arrange
	f := newFixtures()

	// Act
	order, err := f.useCase.UpdateStatus(context.Background(), "order-1", OrderStatus("Teleported"))

	// Assert
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperr.ErrValidation)
	f.repo.AssertNotCalled(t, "UpdateOrderStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateStatus_AppliesAndNotifies(t *testing.T) {
	// Arrange: transição permissiva, Pending -> Shipped direto
	f := newFixtures()

	shipped := pendingOrder("ref-1")
	shipped.Status = OrderStatusShipped

	f.repo.On("UpdateOrderStatus", mock.Anything, "order-1", OrderStatusShipped).Return(nil)
	f.repo.On("GetOrder", mock.Anything, "order-1").Return(shipped, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.notifier.On("Send", "ada@example.com", "Order Status Update", mock.Anything, mock.Anything).Return(nil)

	// Act
	order, err := f.useCase.UpdateStatus(context.Background(), "order-1", OrderStatusShipped)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, order.Status)
	f.notifier.AssertNumberOfCalls(t, "Send", 1)
}

func TestUpdateStatus_NotifierFailureDoesNotFail(t *testing.T) {
	// Arrange
	f := newFixtures()

	shipped := pendingOrder("ref-1")
	shipped.Status = OrderStatusShipped

	f.repo.On("UpdateOrderStatus", mock.Anything, "order-1", OrderStatusShipped).Return(nil)
	f.repo.On("GetOrder", mock.Anything, "order-1").Return(shipped, nil)
	f.users.On("GetUser", mock.Anything, "user-1").
		Return(&users.User{ID: "user-1", Username: "Ada", Email: "ada@example.com"}, nil)
	f.notifier.On("Send", "ada@example.com", "Order Status Update", mock.Anything, mock.Anything).
		Return(assert.AnError)

	// Act
	order, err := f.useCase.UpdateStatus(context.Background(), "order-1", OrderStatusShipped)

	// Assert: falha de e-mail nunca falha a operação
	assert.NoError(t, err)
	assert.NotNil(t, order)
}

func TestGetOrder_OtherUsersOrderHidden(t *testing.T) {
	// Arrange
	f := newFixtures()

	f.repo.On("GetOrder", mock.Anything, "order-1").Return(pendingOrder("ref-1"), nil)

	// Act
	order, err := f.useCase.GetOrder(context.Background(), "order-1", "someone-else")

	// Assert
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
