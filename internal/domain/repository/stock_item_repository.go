package repository

import (
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

// StockItemRepository define el puerto de persistencia para StockItem.
type StockItemRepository interface {
	Create(item *entity.StockItem) error
	GetByID(id string) (*entity.StockItem, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE) para que el
	// chequeo-y-descuento de stock sea atómico frente a descuentos concurrentes.
	GetForUpdate(id string) (*entity.StockItem, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.StockItem, error)
	UpdateQuantity(id string, quantity decimal.Decimal) error
	Update(item *entity.StockItem) error
}
