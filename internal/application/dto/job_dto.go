package dto

import "github.com/shopspring/decimal"

// CreateJobRequest body para POST /api/jobs.
type CreateJobRequest struct {
	CustomerID  string             `json:"customer_id"`
	StaffID     string             `json:"staff_id"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	UsedStock   []StockItemRequest `json:"used_stock,omitempty"`
}

// JobResponse trabajo en respuestas.
type JobResponse struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	CustomerID  string          `json:"customer_id"`
	StaffID     string          `json:"staff_id,omitempty"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CompletedAt string          `json:"completed_at,omitempty"`
}
