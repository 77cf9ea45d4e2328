package orders

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/apperr"
	"storefront/internal/httpapi"
)

// Handler contém os handlers HTTP de pedidos
type Handler struct {
	useCase *OrderUseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *OrderUseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// RegisterRoutes registra as rotas de pedidos no router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	group := r.Group("/orders")
	{
		group.POST("", h.CreateOrder)
		group.GET("/verify/:reference", h.VerifyPayment)
		group.POST("/webhook", h.HandleWebhook)
		group.GET("/my-orders", h.ListUserOrders)
		group.GET("/all", h.ListAllOrders)
		group.GET("/:id", h.GetOrder)
		group.PATCH("/:id/status", h.UpdateStatus)
	}
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		httpapi.FailStatus(c, http.StatusBadRequest, "missing X-User-ID header", apperr.ErrValidation)
		return "", false
	}
	return id, true
}

// CreateOrder cria o pedido e inicializa o pagamento no gateway
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "order items are required", err)
		return
	}

	result, err := h.useCase.CreateOrder(c.Request.Context(), uid, input)
	if err != nil {
		httpapi.Fail(c, "failed to create order", err)
		return
	}

	httpapi.OK(c, http.StatusCreated, "order created and payment initialized", result)
}

// VerifyPayment reconcilia o pagamento pelo caminho de polling
func (h *Handler) VerifyPayment(c *gin.Context) {
	order, err := h.useCase.ReconcilePayment(c.Request.Context(), c.Param("reference"))
	if err != nil {
		httpapi.Fail(c, "payment verification failed", err)
		return
	}

	switch order.Payment.Status {
	case PaymentStatusSuccess:
		httpapi.OK(c, http.StatusOK, "payment verified successfully", order)
	case PaymentStatusFailed:
		c.JSON(http.StatusBadRequest, httpapi.Response{
			Success: false,
			Message: "payment failed",
			Data:    order,
		})
	default:
		httpapi.OK(c, http.StatusOK, "payment still pending", order)
	}
}

// HandleWebhook processa notificações assíncronas do gateway
func (h *Handler) HandleWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "failed to read webhook payload", err)
		return
	}

	signature := c.GetHeader("X-Paystack-Signature")
	if err := h.useCase.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		httpapi.Fail(c, "failed to process webhook", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "webhook processed successfully", nil)
}

// ListUserOrders lista os pedidos do usuário autenticado
func (h *Handler) ListUserOrders(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	list, err := h.useCase.ListUserOrders(c.Request.Context(), uid)
	if err != nil {
		httpapi.Fail(c, "failed to list orders", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", list)
}

// ListAllOrders lista todos os pedidos (admin)
func (h *Handler) ListAllOrders(c *gin.Context) {
	list, err := h.useCase.ListAllOrders(c.Request.Context())
	if err != nil {
		httpapi.Fail(c, "failed to list orders", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", list)
}

// GetOrder busca um pedido do usuário autenticado
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	order, err := h.useCase.GetOrder(c.Request.Context(), c.Param("id"), uid)
	if err != nil {
		httpapi.Fail(c, "order not found", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", order)
}

// updateStatusRequest representa a requisição de mudança de status
type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus aplica uma mudança administrativa de status
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "status is required", err)
		return
	}

	order, err := h.useCase.UpdateStatus(c.Request.Context(), c.Param("id"), OrderStatus(req.Status))
	if err != nil {
		httpapi.Fail(c, "failed to update order status", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "order status updated", order)
}
