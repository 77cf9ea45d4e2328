package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/httpapi"
)

// Handler contém os handlers HTTP do catálogo
type Handler struct {
	useCase *ProductUseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *ProductUseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// RegisterRoutes registra as rotas de produtos no router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	products := r.Group("/products")
	{
		products.POST("", h.CreateProduct)
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// CreateProduct cria um novo produto
func (h *Handler) CreateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), input)
	if err != nil {
		httpapi.Fail(c, "failed to create product", err)
		return
	}

	httpapi.OK(c, http.StatusCreated, "product created", product)
}

// ListProducts lista todos os produtos
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.useCase.ListProducts(c.Request.Context())
	if err != nil {
		httpapi.Fail(c, "failed to list products", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", products)
}

// GetProduct busca um produto pelo ID
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.useCase.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, "product not found", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", product)
}

// UpdateProduct atualiza um produto existente
func (h *Handler) UpdateProduct(c *gin.Context) {
	var input CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "invalid request body", err)
		return
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		httpapi.Fail(c, "failed to update product", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "product updated", product)
}

// DeleteProduct remove um produto
func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.useCase.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, "failed to delete product", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "product deleted", nil)
}
