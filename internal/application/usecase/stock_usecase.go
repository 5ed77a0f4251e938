package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/application/billing"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// StockUseCase gestión del inventario del tenant.
type StockUseCase struct {
	txRunner  billing.InvoiceTxRunner
	stockRepo repository.StockItemRepository
	log       *logger.Logger
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(txRunner billing.InvoiceTxRunner, stockRepo repository.StockItemRepository, log *logger.Logger) *StockUseCase {
	return &StockUseCase{txRunner: txRunner, stockRepo: stockRepo, log: log}
}

// Create registra un artículo de inventario.
func (uc *StockUseCase) Create(tenantID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.Name == "" || in.StockQuantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	item := &entity.StockItem{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          in.Name,
		SKU:           in.SKU,
		SalePrice:     in.SalePrice,
		StockQuantity: in.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.stockRepo.Create(item); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("stock_item", item.ID).Msg("artículo de inventario creado")
	return toStockItemResponse(item), nil
}

// GetByID devuelve un artículo del tenant.
func (uc *StockUseCase) GetByID(tenantID, itemID string) (*dto.StockItemResponse, error) {
	item, err := uc.stockRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toStockItemResponse(item), nil
}

// List devuelve el inventario del tenant, paginado.
func (uc *StockUseCase) List(tenantID string, limit, offset int) ([]dto.StockItemResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	items, err := uc.stockRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, *toStockItemResponse(i))
	}
	return out, nil
}

// Update actualiza nombre, SKU y precio de venta del artículo.
// La cantidad NO se toca aquí: los movimientos de stock pasan por facturas,
// trabajos o Release.
func (uc *StockUseCase) Update(tenantID, itemID string, in dto.CreateStockItemRequest) (*dto.StockItemResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.SalePrice != nil && in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	item, err := uc.stockRepo.GetByID(itemID)
	if err != nil {
		return nil, err
	}
	if item == nil || item.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	item.Name = in.Name
	item.SKU = in.SKU
	item.SalePrice = in.SalePrice
	item.UpdatedAt = time.Now()
	if err := uc.stockRepo.Update(item); err != nil {
		return nil, err
	}
	return toStockItemResponse(item), nil
}

// Release devuelve cantidad al inventario (deshacer un consumo registrado por
// error, devolución de material no usado). Es el único camino legítimo para
// aumentar stock fuera de una compra.
func (uc *StockUseCase) Release(ctx context.Context, tenantID, itemID string, quantity decimal.Decimal) (*dto.StockItemResponse, error) {
	if !quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var item *entity.StockItem
	err := uc.txRunner.RunInvoice(ctx, func(
		_ repository.SettingsRepository,
		stockRepo repository.StockItemRepository,
		_ repository.JobRepository,
		_ repository.InvoiceRepository,
	) error {
		var err error
		item, err = stockRepo.GetForUpdate(itemID)
		if err != nil {
			return err
		}
		if item == nil || item.TenantID != tenantID {
			return domain.ErrNotFound
		}
		item.StockQuantity = item.StockQuantity.Add(quantity)
		return stockRepo.UpdateQuantity(item.ID, item.StockQuantity)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant", tenantID).
		Str("stock_item", itemID).
		Str("quantity", quantity.String()).
		Msg("stock devuelto al inventario")
	return toStockItemResponse(item), nil
}

func toStockItemResponse(i *entity.StockItem) *dto.StockItemResponse {
	return &dto.StockItemResponse{
		ID:            i.ID,
		TenantID:      i.TenantID,
		Name:          i.Name,
		SKU:           i.SKU,
		SalePrice:     i.SalePrice,
		StockQuantity: i.StockQuantity,
	}
}
