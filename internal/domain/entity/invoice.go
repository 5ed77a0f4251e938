package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una factura. paid/partially_paid solo surgen de aplicar pagos;
// void y refunded son terminales y los fija un operador.
const (
	InvoiceStatusDraft         = "draft"
	InvoiceStatusSent          = "sent"
	InvoiceStatusPaid          = "paid"
	InvoiceStatusPartiallyPaid = "partially_paid"
	InvoiceStatusOverdue       = "overdue"
	InvoiceStatusVoid          = "void"
	InvoiceStatusRefunded      = "refunded"
)

// Invoice representa la cabecera de una factura.
// Subtotal/TaxAmount/Total/AmountPaid/BalanceDue son campos derivados:
// se recalculan con billing.Recalculate, nunca se asignan a mano.
type Invoice struct {
	ID          string
	TenantID    string
	CustomerID  string
	SourceJobID string // vacío para facturas manuales de stock; único por trabajo
	Number      string // {prefijo}{consecutivo a 4 dígitos}, único por tenant, asignado una sola vez
	IssueDate   time.Time
	DueDate     time.Time
	Subtotal    decimal.Decimal
	TaxRate     decimal.Decimal
	TaxAmount   decimal.Decimal
	Total       decimal.Decimal
	AmountPaid  decimal.Decimal
	BalanceDue  decimal.Decimal
	Status      string
	Currency    string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	LineItems []*InvoiceLineItem
	Payments  []*InvoicePayment
}

// InvoiceLineItem línea facturable. TotalPrice = Quantity * UnitPrice (invariante).
type InvoiceLineItem struct {
	ID          string
	InvoiceID   string
	StockItemID string // vacío para la línea de servicio del trabajo
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Position    int // orden estable de las líneas
}

// InvoicePayment abono aplicado a la factura. Solo se agregan, nunca se
// modifican ni eliminan en operación normal.
type InvoicePayment struct {
	ID        string
	InvoiceID string
	Amount    decimal.Decimal // siempre > 0
	Date      time.Time
	Method    string // transferencia, efectivo, tarjeta...
	Reference string // referencia externa (consignación, pasarela)
	Notes     string
	CreatedAt time.Time
}

// IsTerminal indica si el estado es terminal (excluido de la derivación automática).
func IsTerminalStatus(status string) bool {
	return status == InvoiceStatusVoid || status == InvoiceStatusRefunded
}
