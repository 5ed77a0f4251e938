package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tenant representa una empresa de servicios en campo (multi-tenant: sus datos están aislados).
type Tenant struct {
	ID        string
	Name      string
	NIT       string // NIT colombiano (con o sin dígito de verificación)
	Address   string
	Phone     string
	Email     string
	Status    string // active, suspended, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TenantSettings configuración de facturación y nómina del tenant.
// NextInvoiceSeq es la única fuente de verdad del consecutivo de factura:
// solo se incrementa dentro de la transacción que crea la factura.
type TenantSettings struct {
	TenantID          string
	InvoicePrefix     string // ej. "INV", "FV-"
	NextInvoiceSeq    int64
	TaxRate           decimal.Decimal // fracción, ej. 0.19
	Currency          string          // COP, USD...
	InvoiceDueDays    int             // plazo de pago en días desde la emisión
	DailyThresholdMin int             // minutos mínimos para que un día cuente en tarifa diaria
	UpdatedAt         time.Time
}
