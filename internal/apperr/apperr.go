package apperr

import (
	"errors"
	"net/http"
)

// Erros sentinela compartilhados por todos os casos de uso.
// Cada camada envolve com fmt.Errorf("...: %w", Err...) e os
// handlers mapeiam para o status HTTP via Status.
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrAuthentication    = errors.New("authentication failed")
	ErrGateway           = errors.New("payment gateway error")
)

// Status mapeia um erro de domínio para o status HTTP correspondente
func Status(err error) int {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInsufficientStock):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrGateway):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
