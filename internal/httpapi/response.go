package httpapi

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/apperr"
)

// Response é o envelope padrão de todas as respostas da API
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK responde com sucesso e o payload informado
func OK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Fail responde com o status mapeado do erro de domínio
func Fail(c *gin.Context, message string, err error) {
	c.JSON(apperr.Status(err), Response{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

// FailStatus responde com um status explícito
func FailStatus(c *gin.Context, status int, message string, err error) {
	resp := Response{
		Success: false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(status, resp)
}
