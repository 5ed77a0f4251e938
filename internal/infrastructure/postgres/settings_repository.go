package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo implementación de SettingsRepository sobre PostgreSQL (usable con pool o tx).
type SettingsRepo struct {
	q Querier
}

// NewSettingsRepository construye el adaptador de configuración. Pasar pool o tx (Querier).
func NewSettingsRepository(q Querier) *SettingsRepo {
	return &SettingsRepo{q: q}
}

// Get obtiene la configuración del tenant. Nil si no existe.
func (r *SettingsRepo) Get(tenantID string) (*entity.TenantSettings, error) {
	query := `
		SELECT tenant_id, invoice_prefix, next_invoice_seq, tax_rate, currency,
		       invoice_due_days, daily_threshold_mins, updated_at
		FROM tenant_settings WHERE tenant_id = $1`
	var s entity.TenantSettings
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(
		&s.TenantID, &s.InvoicePrefix, &s.NextInvoiceSeq, &s.TaxRate, &s.Currency,
		&s.InvoiceDueDays, &s.DailyThresholdMin, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant settings: %w", err)
	}
	return &s, nil
}

// NextInvoiceNumber incrementa y reserva el consecutivo en un solo UPDATE
// atómico. El UPDATE bloquea la fila hasta el commit: dos facturas concurrentes
// del mismo tenant se serializan aquí y jamás comparten número. Si la
// transacción que llama hace rollback, el incremento también se revierte.
func (r *SettingsRepo) NextInvoiceNumber(tenantID string) (string, error) {
	query := `
		UPDATE tenant_settings
		SET next_invoice_seq = next_invoice_seq + 1, updated_at = now()
		WHERE tenant_id = $1
		RETURNING invoice_prefix, next_invoice_seq - 1`
	var prefix string
	var seq int64
	err := r.q.QueryRow(context.Background(), query, tenantID).Scan(&prefix, &seq)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrSettingsMissing
		}
		return "", fmt.Errorf("next invoice number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, seq), nil
}

// Upsert inserta o actualiza la configuración del tenant. El consecutivo solo
// se fija en el INSERT inicial: un upsert posterior nunca lo pisa.
func (r *SettingsRepo) Upsert(settings *entity.TenantSettings) error {
	query := `
		INSERT INTO tenant_settings (tenant_id, invoice_prefix, next_invoice_seq, tax_rate,
		                             currency, invoice_due_days, daily_threshold_mins, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (tenant_id)
		DO UPDATE SET invoice_prefix = EXCLUDED.invoice_prefix,
		              tax_rate = EXCLUDED.tax_rate,
		              currency = EXCLUDED.currency,
		              invoice_due_days = EXCLUDED.invoice_due_days,
		              daily_threshold_mins = EXCLUDED.daily_threshold_mins,
		              updated_at = now()`
	_, err := r.q.Exec(context.Background(), query,
		settings.TenantID, settings.InvoicePrefix, settings.NextInvoiceSeq, settings.TaxRate,
		settings.Currency, settings.InvoiceDueDays, settings.DailyThresholdMin,
	)
	if err != nil {
		return fmt.Errorf("upsert tenant settings: %w", err)
	}
	return nil
}
