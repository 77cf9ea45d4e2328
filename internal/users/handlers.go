package users

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/httpapi"
)

// Handler contém os handlers HTTP de usuários
type Handler struct {
	useCase *UserUseCase
}

// NewHandler cria uma nova instância de Handler
func NewHandler(useCase *UserUseCase) *Handler {
	return &Handler{
		useCase: useCase,
	}
}

// RegisterRoutes registra as rotas de usuários no router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	users := r.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("/:id", h.GetUser)
		users.DELETE("/:id", h.DeleteUser)
	}
}

// CreateUser cria um novo usuário
func (h *Handler) CreateUser(c *gin.Context) {
	var input CreateUserInput
	if err := c.ShouldBindJSON(&input); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "username and email are required", err)
		return
	}

	user, err := h.useCase.CreateUser(c.Request.Context(), input)
	if err != nil {
		httpapi.Fail(c, "error creating user", err)
		return
	}

	httpapi.OK(c, http.StatusCreated, "user created", user)
}

// GetUser busca um usuário pelo ID
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.useCase.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpapi.Fail(c, "user not found", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "", user)
}

// DeleteUser remove um usuário
func (h *Handler) DeleteUser(c *gin.Context) {
	if err := h.useCase.DeleteUser(c.Request.Context(), c.Param("id")); err != nil {
		httpapi.Fail(c, "error deleting user", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "user deleted successfully", nil)
}
