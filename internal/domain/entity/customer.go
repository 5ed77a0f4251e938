package entity

import "time"

// Disparadores de envío de factura por correo (preferencia del cliente).
// Los patrones BIWEEKLY/FOURWEEKLY del sistema anterior no se soportan:
// una factura con patrón desconocido permanece en borrador hasta envío manual.
const (
	TriggerOnCompletion = "ON_COMPLETION" // enviar al crear la factura del trabajo
	TriggerWeekly       = "WEEKLY"        // barrido semanal (día de la semana de emisión)
	TriggerMonthly      = "MONTHLY"       // barrido mensual (día del mes de emisión)
)

// Customer representa un cliente del tenant (facturación y trabajos).
type Customer struct {
	ID                  string
	TenantID            string
	Name                string
	TaxID               string // NIT o Cédula
	Email               string
	Phone               string
	Address             string
	InvoiceEmailEnabled bool   // si false, nunca se envía la factura por correo
	InvoiceTrigger      string // ON_COMPLETION | WEEKLY | MONTHLY
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
