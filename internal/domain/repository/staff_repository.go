package repository

import "github.com/jhoicas/ServiCampo-api/internal/domain/entity"

// StaffRepository define el puerto de persistencia para Staff.
type StaffRepository interface {
	Create(staff *entity.Staff) error
	GetByID(id string) (*entity.Staff, error)
	// ListActive devuelve el personal activo del tenant; si ids no está vacío,
	// filtra por esos IDs (selección parcial de una corrida de nómina).
	ListActive(tenantID string, ids []string) ([]*entity.Staff, error)
	Update(staff *entity.Staff) error
}
