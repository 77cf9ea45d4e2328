package cart

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/apperr"
	"storefront/internal/httpapi"
)

// Handler contém os handlers HTTP do carrinho
type Handler struct {
	useCase *CartUseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *CartUseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// RegisterRoutes registra as rotas do carrinho no router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	carts := r.Group("/cart")
	{
		carts.GET("", h.GetCart)
		carts.POST("/items", h.AddItem)
		carts.PATCH("/items/:productId", h.UpdateItem)
		carts.DELETE("/items/:productId", h.RemoveItem)
		carts.DELETE("", h.ClearCart)
	}
}

// addItemRequest representa a requisição para adicionar um item
type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// updateItemRequest representa a requisição para atualizar a quantidade
type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		httpapi.FailStatus(c, http.StatusBadRequest, "missing X-User-ID header", apperr.ErrValidation)
		return "", false
	}
	return id, true
}

// GetCart retorna o carrinho do usuário
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	cart, err := h.useCase.GetCart(c.Request.Context(), uid)
	if err != nil {
		httpapi.Fail(c, "failed to load cart", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", cart)
}

// AddItem adiciona um item ao carrinho
func (h *Handler) AddItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.useCase.AddItem(c.Request.Context(), uid, req.ProductID, req.Quantity); err != nil {
		httpapi.Fail(c, "failed to add item to cart", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "item added to cart", nil)
}

// UpdateItem atualiza a quantidade de um item do carrinho
func (h *Handler) UpdateItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	if err := h.useCase.AddItem(c.Request.Context(), uid, c.Param("productId"), req.Quantity); err != nil {
		httpapi.Fail(c, "failed to update cart item", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "cart item updated", nil)
}

// RemoveItem remove um item do carrinho
func (h *Handler) RemoveItem(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.useCase.RemoveItem(c.Request.Context(), uid, c.Param("productId")); err != nil {
		httpapi.Fail(c, "failed to remove cart item", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "item removed from cart", nil)
}

// ClearCart esvazia o carrinho do usuário
func (h *Handler) ClearCart(c *gin.Context) {
	uid, ok := userID(c)
	if !ok {
		return
	}

	if err := h.useCase.ClearCart(c.Request.Context(), uid); err != nil {
		httpapi.Fail(c, "failed to clear cart", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "cart cleared", nil)
}
