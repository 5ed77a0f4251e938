package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/payroll"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// Ensure TxRunner implements billing.InvoiceTxRunner and payroll.PayrollTxRunner.
var _ billing.InvoiceTxRunner = (*TxRunner)(nil)
var _ payroll.PayrollTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunInvoice inicia una transacción con los repos de facturación atados a la tx
// y hace Commit o Rollback. Consecutivo, stock, factura y estado del trabajo se
// confirman o se revierten como un todo.
func (r *TxRunner) RunInvoice(ctx context.Context, fn func(
	settingsRepo repository.SettingsRepository,
	stockRepo repository.StockItemRepository,
	jobRepo repository.JobRepository,
	invoiceRepo repository.InvoiceRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	settingsRepo := NewSettingsRepository(tx)
	stockRepo := NewStockItemRepository(tx)
	jobRepo := NewJobRepository(tx)
	invoiceRepo := NewInvoiceRepository(tx)

	if err := fn(settingsRepo, stockRepo, jobRepo, invoiceRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunPayroll inicia una transacción para la fase de escritura de la corrida de
// nómina (borrar liquidaciones previas + crear las nuevas).
func (r *TxRunner) RunPayroll(ctx context.Context, fn func(
	payslipRepo repository.PayslipRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewPayslipRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
