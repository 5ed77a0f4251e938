package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem artículo de inventario del tenant.
// SalePrice nil = sin precio configurado; al facturar se toma como 0 con un WARN
// (comportamiento heredado: la factura no se bloquea por un precio faltante).
type StockItem struct {
	ID            string
	TenantID      string
	Name          string
	SKU           string
	SalePrice     *decimal.Decimal
	StockQuantity decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// SalePriceOrZero devuelve el precio de venta, o cero si no está configurado.
func (s *StockItem) SalePriceOrZero() decimal.Decimal {
	if s.SalePrice == nil {
		return decimal.Zero
	}
	return *s.SalePrice
}
