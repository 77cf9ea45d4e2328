package mailer

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/httpapi"
)

// Handler contém os handlers HTTP de e-mail
type Handler struct {
	notifier Notifier
	testTo   string
}

// NewHandler cria uma nova instância de Handler.
// testTo é o destinatário do e-mail de teste.
func NewHandler(notifier Notifier, testTo string) *Handler {
	return &Handler{
		notifier: notifier,
		testTo:   testTo,
	}
}

// RegisterRoutes registra as rotas de e-mail no router
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	emails := r.Group("/email")
	{
		emails.POST("/send", h.SendEmail)
		emails.POST("/send-test", h.SendTestEmail)
	}
}

// sendEmailRequest representa a requisição de envio de e-mail
type sendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Text    string `json:"text" binding:"required"`
	HTML    string `json:"html"`
}

// SendEmail envia um e-mail arbitrário
func (h *Handler) SendEmail(c *gin.Context) {
	var req sendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpapi.FailStatus(c, http.StatusBadRequest, "missing required fields: to, subject, text", err)
		return
	}

	if err := h.notifier.Send(req.To, req.Subject, req.Text, req.HTML); err != nil {
		httpapi.FailStatus(c, http.StatusInternalServerError, "failed to send email", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "email sent successfully", nil)
}

// SendTestEmail envia o e-mail de teste para o destinatário configurado
func (h *Handler) SendTestEmail(c *gin.Context) {
	subject, text, html := TestBody()
	if err := h.notifier.Send(h.testTo, subject, text, html); err != nil {
		httpapi.FailStatus(c, http.StatusInternalServerError, "failed to send email", err)
		return
	}

	httpapi.OK(c, http.StatusOK, "test email sent successfully", nil)
}
