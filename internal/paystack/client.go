package paystack

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"storefront/internal/apperr"
)

// Gateway abstrai as operações do provedor de pagamento
type Gateway interface {
	Initialize(ctx context.Context, email string, amount int64, reference string, metadata map[string]string) (*InitializeResult, error)
	Verify(ctx context.Context, reference string) (*VerifyResult, error)
	VerifySignature(payload []byte, signature string) bool
}

// Status retornado pelo gateway na verificação
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

// InitializeResult representa o resultado da inicialização de um pagamento
type InitializeResult struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

// VerifyResult representa o resultado da verificação de um pagamento
type VerifyResult struct {
	Status           string `json:"status"`
	GatewayReference string `json:"gateway_reference"`
	Amount           int64  `json:"amount"`
	Channel          string `json:"channel,omitempty"`
}

// Client implementa Gateway usando a API HTTP do Paystack
type Client struct {
	http        *resty.Client
	secretKey   string
	callbackURL string
	logger      *zap.Logger
}

// NewClient cria uma nova instância de Client
func NewClient(baseURL, secretKey, callbackURL string, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(secretKey).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http:        http,
		secretKey:   secretKey,
		callbackURL: callbackURL,
		logger:      logger,
	}
}

// envelope padrão das respostas da API do Paystack
type apiResponse[T any] struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type initializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type verifyData struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
	Amount    int64  `json:"amount"`
	Channel   string `json:"channel"`
}

// Initialize registra a transação no Paystack e retorna a URL de autorização.
// O valor é convertido para kobo (subunidade do NGN) na requisição.
func (c *Client) Initialize(ctx context.Context, email string, amount int64, reference string, metadata map[string]string) (*InitializeResult, error) {
	body := map[string]interface{}{
		"email":        email,
		"amount":       amount * 100,
		"reference":    reference,
		"metadata":     metadata,
		"callback_url": c.callbackURL,
	}

	var out apiResponse[initializeData]
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&out).
		Post("/transaction/initialize")
	if err != nil {
		return nil, fmt.Errorf("paystack initialize request failed: %w: %v", apperr.ErrGateway, err)
	}
	if resp.IsError() || !out.Status {
		c.logger.Error("paystack initialize rejected",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("message", out.Message))
		return nil, fmt.Errorf("paystack initialize rejected: %s: %w", out.Message, apperr.ErrGateway)
	}

	return &InitializeResult{
		AuthorizationURL: out.Data.AuthorizationURL,
		AccessCode:       out.Data.AccessCode,
		Reference:        out.Data.Reference,
	}, nil
}

// Verify consulta o status real de uma transação pelo reference
func (c *Client) Verify(ctx context.Context, reference string) (*VerifyResult, error) {
	var out apiResponse[verifyData]
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&out).
		Get("/transaction/verify/" + reference)
	if err != nil {
		return nil, fmt.Errorf("paystack verify request failed: %w: %v", apperr.ErrGateway, err)
	}
	if resp.IsError() || !out.Status {
		c.logger.Error("paystack verify rejected",
			zap.Int("status_code", resp.StatusCode()),
			zap.String("reference", reference),
			zap.String("message", out.Message))
		return nil, fmt.Errorf("paystack verify rejected: %s: %w", out.Message, apperr.ErrGateway)
	}

	status := out.Data.Status
	if status != StatusSuccess && status != StatusFailed {
		// abandoned, ongoing etc. são tratados como pendentes
		status = StatusPending
	}

	return &VerifyResult{
		Status:           status,
		GatewayReference: out.Data.Reference,
		Amount:           out.Data.Amount,
		Channel:          out.Data.Channel,
	}, nil
}

// VerifySignature valida a assinatura HMAC-SHA512 do webhook.
// A comparação é em tempo constante (hmac.Equal).
func (c *Client) VerifySignature(payload []byte, signature string) bool {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}

	mac := hmac.New(sha512.New, []byte(c.secretKey))
	mac.Write(payload)
	return hmac.Equal(sig, mac.Sum(nil))
}
