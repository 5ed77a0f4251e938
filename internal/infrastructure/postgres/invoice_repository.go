package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implementación de InvoiceRepository sobre PostgreSQL (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador de facturas. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, tenant_id, customer_id, source_job_id, number, issue_date, due_date,
	subtotal, tax_rate, tax_amount, total, amount_paid, balance_due, status, currency,
	created_at, updated_at`

// Create inserta la cabecera de la factura. Los constraints únicos
// (tenant_id, number) y el índice parcial sobre source_job_id respaldan en la
// base las garantías de numeración y de una factura por trabajo.
func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.TenantID, invoice.CustomerID, nullIfEmpty(invoice.SourceJobID),
		invoice.Number, invoice.IssueDate, invoice.DueDate,
		invoice.Subtotal, invoice.TaxRate, invoice.TaxAmount, invoice.Total,
		invoice.AmountPaid, invoice.BalanceDue, invoice.Status, invoice.Currency,
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if strings.Contains(constraintName(err), "source_job") {
				return domain.ErrDuplicateInvoice
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create invoice: %w", err)
	}
	return nil
}

// CreateLineItem inserta una línea de la factura.
func (r *InvoiceRepo) CreateLineItem(item *entity.InvoiceLineItem) error {
	query := `
		INSERT INTO invoice_line_items (id, invoice_id, stock_item_id, description, quantity,
		                                unit_price, total_price, position)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.InvoiceID, nullIfEmpty(item.StockItemID), item.Description,
		item.Quantity, item.UnitPrice, item.TotalPrice, item.Position,
	)
	if err != nil {
		return fmt.Errorf("create invoice line item: %w", err)
	}
	return nil
}

// CreatePayment inserta un abono (append-only).
func (r *InvoiceRepo) CreatePayment(payment *entity.InvoicePayment) error {
	query := `
		INSERT INTO invoice_payments (id, invoice_id, amount, paid_at, method, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		payment.ID, payment.InvoiceID, payment.Amount, payment.Date,
		payment.Method, nullIfEmpty(payment.Reference), nullIfEmpty(payment.Notes), payment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create invoice payment: %w", err)
	}
	return nil
}

// UpdateDerived persiste los campos derivados. El número y las fechas de
// emisión son inmutables y quedan fuera del UPDATE.
func (r *InvoiceRepo) UpdateDerived(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET subtotal = $2, tax_amount = $3, total = $4, amount_paid = $5,
		    balance_due = $6, status = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.Subtotal, invoice.TaxAmount, invoice.Total,
		invoice.AmountPaid, invoice.BalanceDue, invoice.Status, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update invoice derived: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene la cabecera de la factura. Nil si no existe.
func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice")
}

// GetForUpdate obtiene la cabecera bloqueando la fila (SELECT FOR UPDATE):
// abonos y cambios de estado concurrentes sobre la misma factura se serializan.
func (r *InvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get invoice for update")
}

// GetLineItems devuelve las líneas en su orden original.
func (r *InvoiceRepo) GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	query := `
		SELECT id, invoice_id, COALESCE(stock_item_id, ''), description, quantity,
		       unit_price, total_price, position
		FROM invoice_line_items WHERE invoice_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice line items: %w", err)
	}
	defer rows.Close()

	var items []*entity.InvoiceLineItem
	for rows.Next() {
		var li entity.InvoiceLineItem
		if err := rows.Scan(&li.ID, &li.InvoiceID, &li.StockItemID, &li.Description,
			&li.Quantity, &li.UnitPrice, &li.TotalPrice, &li.Position); err != nil {
			return nil, fmt.Errorf("scan invoice line item: %w", err)
		}
		items = append(items, &li)
	}
	return items, rows.Err()
}

// GetPayments devuelve los abonos en orden cronológico.
func (r *InvoiceRepo) GetPayments(invoiceID string) ([]*entity.InvoicePayment, error) {
	query := `
		SELECT id, invoice_id, amount, paid_at, method, COALESCE(reference, ''), COALESCE(notes, ''), created_at
		FROM invoice_payments WHERE invoice_id = $1 ORDER BY paid_at, created_at`
	rows, err := r.q.Query(context.Background(), query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice payments: %w", err)
	}
	defer rows.Close()

	var payments []*entity.InvoicePayment
	for rows.Next() {
		var p entity.InvoicePayment
		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.Date, &p.Method,
			&p.Reference, &p.Notes, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice payment: %w", err)
		}
		payments = append(payments, &p)
	}
	return payments, rows.Err()
}

// ExistsForJob indica si el trabajo ya tiene factura.
func (r *InvoiceRepo) ExistsForJob(jobID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM invoices WHERE source_job_id = $1)`, jobID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists invoice for job: %w", err)
	}
	return exists, nil
}

// ListByTenant devuelve las facturas del tenant, más recientes primero.
func (r *InvoiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

// ListDraftJobInvoices devuelve borradores originados en trabajos (candidatos
// al barrido de envío programado).
func (r *InvoiceRepo) ListDraftJobInvoices(tenantID string) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + ` FROM invoices
		WHERE tenant_id = $1 AND status = 'draft' AND source_job_id IS NOT NULL
		ORDER BY issue_date`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list draft job invoices: %w", err)
	}
	defer rows.Close()
	return r.scanMany(rows)
}

func (r *InvoiceRepo) scanOne(row pgx.Row, op string) (*entity.Invoice, error) {
	var inv entity.Invoice
	var sourceJobID *string
	err := row.Scan(
		&inv.ID, &inv.TenantID, &inv.CustomerID, &sourceJobID, &inv.Number,
		&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount,
		&inv.Total, &inv.AmountPaid, &inv.BalanceDue, &inv.Status, &inv.Currency,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if sourceJobID != nil {
		inv.SourceJobID = *sourceJobID
	}
	return &inv, nil
}

func (r *InvoiceRepo) scanMany(rows pgx.Rows) ([]*entity.Invoice, error) {
	var invoices []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var sourceJobID *string
		if err := rows.Scan(
			&inv.ID, &inv.TenantID, &inv.CustomerID, &sourceJobID, &inv.Number,
			&inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount,
			&inv.Total, &inv.AmountPaid, &inv.BalanceDue, &inv.Status, &inv.Currency,
			&inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if sourceJobID != nil {
			inv.SourceJobID = *sourceJobID
		}
		invoices = append(invoices, &inv)
	}
	return invoices, rows.Err()
}
