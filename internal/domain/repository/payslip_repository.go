package repository

import (
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

// PayslipRepository define el puerto de persistencia para Payslip.
type PayslipRepository interface {
	Create(payslip *entity.Payslip) error
	// DeleteByPeriod elimina las liquidaciones previas del período para el
	// personal indicado (ids vacío = todo el tenant). Se usa al inicio de la
	// transacción de una corrida: reemplazar, nunca mezclar corridas.
	DeleteByPeriod(tenantID string, periodStart, periodEnd time.Time, staffIDs []string) error
	GetByID(id string) (*entity.Payslip, error)
	ListByPeriod(tenantID string, periodStart, periodEnd time.Time) ([]*entity.Payslip, error)
	ListByStaff(tenantID, staffID string, limit, offset int) ([]*entity.Payslip, error)
}
