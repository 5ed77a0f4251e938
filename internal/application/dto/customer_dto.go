package dto

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	Name                string `json:"name"`
	TaxID               string `json:"tax_id"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address,omitempty"`
	InvoiceEmailEnabled bool   `json:"invoice_email_enabled"`
	InvoiceTrigger      string `json:"invoice_trigger,omitempty"` // ON_COMPLETION | WEEKLY | MONTHLY
}

// CustomerResponse cliente en respuestas.
type CustomerResponse struct {
	ID                  string `json:"id"`
	TenantID            string `json:"tenant_id"`
	Name                string `json:"name"`
	TaxID               string `json:"tax_id"`
	Email               string `json:"email,omitempty"`
	Phone               string `json:"phone,omitempty"`
	Address             string `json:"address,omitempty"`
	InvoiceEmailEnabled bool   `json:"invoice_email_enabled"`
	InvoiceTrigger      string `json:"invoice_trigger,omitempty"`
}
