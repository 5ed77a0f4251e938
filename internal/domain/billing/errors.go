package billing

import "github.com/jhoicas/ServiCampo-api/internal/domain"

// Alias a los sentinelas de dominio para que los callers hagan errors.Is
// contra un solo paquete.
var (
	ErrNonPositiveAmount = domain.ErrInvalidInput
	ErrAlreadySettled    = domain.ErrAlreadySettled
	ErrOverpayment       = domain.ErrOverpayment
)
