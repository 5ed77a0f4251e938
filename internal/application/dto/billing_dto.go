package dto

import "github.com/shopspring/decimal"

// CreateStockInvoiceRequest body para POST /api/invoices/stock.
// Factura manual por venta de artículos de inventario.
type CreateStockInvoiceRequest struct {
	CustomerID string             `json:"customer_id"`
	Items      []StockItemRequest `json:"items"`
}

// StockItemRequest artículo y cantidad a facturar.
type StockItemRequest struct {
	StockItemID string          `json:"stock_item_id"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateJobInvoiceRequest body para POST /api/invoices/job.
type CreateJobInvoiceRequest struct {
	JobID string `json:"job_id"`
}

// RecordPaymentRequest body para POST /api/invoices/:id/payments.
// Campos explícitos por operación: nada de asignación masiva de campos del request.
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}

// SetInvoiceStatusRequest body para PATCH /api/invoices/:id/status.
// Solo admite draft, sent, void y refunded; los estados de pago se derivan.
type SetInvoiceStatusRequest struct {
	Status string `json:"status"`
}

// InvoiceResponse factura completa en respuestas.
type InvoiceResponse struct {
	ID          string            `json:"id"`
	TenantID    string            `json:"tenant_id"`
	CustomerID  string            `json:"customer_id"`
	SourceJobID string            `json:"source_job_id,omitempty"`
	Number      string            `json:"number"`
	IssueDate   string            `json:"issue_date"`
	DueDate     string            `json:"due_date"`
	Subtotal    decimal.Decimal   `json:"subtotal"`
	TaxRate     decimal.Decimal   `json:"tax_rate"`
	TaxAmount   decimal.Decimal   `json:"tax_amount"`
	Total       decimal.Decimal   `json:"total"`
	AmountPaid  decimal.Decimal   `json:"amount_paid"`
	BalanceDue  decimal.Decimal   `json:"balance_due"`
	Status      string            `json:"status"`
	Currency    string            `json:"currency,omitempty"`
	LineItems   []LineItemResponse `json:"line_items"`
	Payments    []PaymentResponse  `json:"payments"`
}

// LineItemResponse línea de la factura en la respuesta.
type LineItemResponse struct {
	ID          string          `json:"id"`
	StockItemID string          `json:"stock_item_id,omitempty"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// PaymentResponse abono en la respuesta.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Amount    decimal.Decimal `json:"amount"`
	Date      string          `json:"date"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
	Notes     string          `json:"notes,omitempty"`
}
