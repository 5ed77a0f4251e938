package dto

import "github.com/shopspring/decimal"

// CreateStockItemRequest body para POST /api/stock.
// SalePrice nil = artículo sin precio configurado (se factura a 0 con WARN).
type CreateStockItemRequest struct {
	Name          string           `json:"name"`
	SKU           string           `json:"sku,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
}

// StockItemResponse artículo en respuestas.
type StockItemResponse struct {
	ID            string           `json:"id"`
	TenantID      string           `json:"tenant_id"`
	Name          string           `json:"name"`
	SKU           string           `json:"sku,omitempty"`
	SalePrice     *decimal.Decimal `json:"sale_price,omitempty"`
	StockQuantity decimal.Decimal  `json:"stock_quantity"`
}
