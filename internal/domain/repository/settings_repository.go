package repository

import "github.com/jhoicas/ServiCampo-api/internal/domain/entity"

// SettingsRepository define el puerto para la configuración del tenant.
// El consecutivo de factura vive aquí: ningún otro componente lo incrementa.
type SettingsRepository interface {
	Get(tenantID string) (*entity.TenantSettings, error)
	// NextInvoiceNumber incrementa y reserva el consecutivo de forma atómica
	// (UPDATE ... RETURNING) y devuelve el número formateado {prefijo}{seq a 4 dígitos}.
	// Debe llamarse dentro de la misma transacción que crea la factura, para
	// que un fallo de creación también revierta el incremento.
	// Retorna domain.ErrSettingsMissing si el tenant no tiene configuración.
	NextInvoiceNumber(tenantID string) (string, error)
	Upsert(settings *entity.TenantSettings) error
}
