// Package payroll orquesta la corrida de nómina: lecturas del período,
// cálculo puro y reemplazo transaccional de las liquidaciones.
package payroll

import (
	"context"

	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// PayrollTxRunner ejecuta la fase de escritura de la corrida en una
// transacción: borrar las liquidaciones previas del período y crear las
// nuevas es un solo acto. Jamás puede quedar una corrida a medias.
type PayrollTxRunner interface {
	RunPayroll(ctx context.Context, fn func(payslipRepo repository.PayslipRepository) error) error
}
