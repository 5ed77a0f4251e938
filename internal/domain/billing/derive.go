// Package billing contiene la lógica pura de facturación (servicio de dominio):
// recálculo de totales y derivación de estado. Sin dependencias de persistencia,
// para poder probarla en aislamiento.
package billing

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

// Epsilon tolerancia monetaria (~0.01 unidad) para comparar saldos sin falsos
// desbalances por redondeo.
var Epsilon = decimal.NewFromFloat(0.01)

// Recalculate recalcula todos los campos derivados de la factura a partir de
// sus líneas y pagos: TotalPrice por línea, Subtotal, TaxAmount, Total,
// AmountPaid y BalanceDue. Es la única vía válida para fijar esos campos.
func Recalculate(inv *entity.Invoice) {
	subtotal := decimal.Zero
	for _, li := range inv.LineItems {
		li.TotalPrice = li.Quantity.Mul(li.UnitPrice)
		subtotal = subtotal.Add(li.TotalPrice)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate)
	inv.Total = inv.Subtotal.Add(inv.TaxAmount)

	paid := decimal.Zero
	for _, p := range inv.Payments {
		paid = paid.Add(p.Amount)
	}
	inv.AmountPaid = paid
	inv.BalanceDue = inv.Total.Sub(paid)
}

// DeriveStatus deriva el estado de la factura después de cualquier mutación.
// void y refunded son pegajosos: nunca se derivan ni se salen solos.
// draft nunca se promueve a sent automáticamente (eso lo hace el barrido de
// envío o un cambio explícito).
func DeriveStatus(inv *entity.Invoice, now time.Time) {
	if entity.IsTerminalStatus(inv.Status) {
		return
	}
	switch {
	case inv.BalanceDue.LessThanOrEqual(Epsilon):
		inv.Status = entity.InvoiceStatusPaid
	case inv.AmountPaid.GreaterThan(decimal.Zero) && inv.BalanceDue.GreaterThan(decimal.Zero):
		inv.Status = entity.InvoiceStatusPartiallyPaid
	case inv.DueDate.Before(now):
		inv.Status = entity.InvoiceStatusOverdue
	case inv.Status == entity.InvoiceStatusDraft:
		// se queda en draft
	default:
		inv.Status = entity.InvoiceStatusSent
	}
}

// ValidatePayment valida un abono contra el saldo actual de la factura.
// Reglas: monto > 0, la factura no puede estar ya saldada, y el monto no puede
// exceder el saldo más la tolerancia Epsilon.
func ValidatePayment(inv *entity.Invoice, amount decimal.Decimal) error {
	if !amount.GreaterThan(decimal.Zero) {
		return ErrNonPositiveAmount
	}
	if inv.BalanceDue.LessThanOrEqual(Epsilon) {
		return ErrAlreadySettled
	}
	if amount.GreaterThan(inv.BalanceDue.Add(Epsilon)) {
		return ErrOverpayment
	}
	return nil
}

// AllowedExplicitStatus indica si un operador puede fijar ese estado directamente.
// paid/partially_paid/overdue solo surgen de la derivación; forzarlos rompería
// la consistencia entre estado y pagos.
func AllowedExplicitStatus(status string) bool {
	switch status {
	case entity.InvoiceStatusDraft, entity.InvoiceStatusSent,
		entity.InvoiceStatusVoid, entity.InvoiceStatusRefunded:
		return true
	}
	return false
}
