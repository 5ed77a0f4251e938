package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

var _ repository.StockItemRepository = (*StockItemRepo)(nil)

// StockItemRepo implementación de StockItemRepository sobre PostgreSQL (usable con pool o tx).
type StockItemRepo struct {
	q Querier
}

// NewStockItemRepository construye el adaptador de inventario. Pasar pool o tx (Querier).
func NewStockItemRepository(q Querier) *StockItemRepo {
	return &StockItemRepo{q: q}
}

const stockItemColumns = `id, tenant_id, name, COALESCE(sku, ''), sale_price, stock_quantity, created_at, updated_at`

// Create inserta un artículo de inventario.
func (r *StockItemRepo) Create(item *entity.StockItem) error {
	query := `
		INSERT INTO stock_items (id, tenant_id, name, sku, sale_price, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.Name, nullIfEmpty(item.SKU),
		item.SalePrice, item.StockQuantity, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create stock item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo. Nil si no existe.
func (r *StockItemRepo) GetByID(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock item")
}

// GetForUpdate obtiene el artículo bloqueando la fila (SELECT FOR UPDATE):
// el chequeo de disponibilidad y el descuento son atómicos frente a
// descuentos concurrentes del mismo artículo.
func (r *StockItemRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	query := `SELECT ` + stockItemColumns + ` FROM stock_items WHERE id = $1 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get stock item for update")
}

// ListByTenant devuelve el inventario del tenant ordenado por nombre.
func (r *StockItemRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.StockItem, error) {
	query := `
		SELECT ` + stockItemColumns + ` FROM stock_items
		WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}
	defer rows.Close()

	var items []*entity.StockItem
	for rows.Next() {
		var i entity.StockItem
		if err := rows.Scan(&i.ID, &i.TenantID, &i.Name, &i.SKU, &i.SalePrice,
			&i.StockQuantity, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock item: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

// UpdateQuantity fija la cantidad en inventario. La columna tiene CHECK >= 0
// como última línea de defensa contra descuentos concurrentes mal serializados.
func (r *StockItemRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE stock_items SET stock_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Update actualiza nombre, SKU y precio de venta (no la cantidad).
func (r *StockItemRepo) Update(item *entity.StockItem) error {
	query := `
		UPDATE stock_items SET name = $2, sku = $3, sale_price = $4, updated_at = $5
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		item.ID, item.Name, nullIfEmpty(item.SKU), item.SalePrice, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StockItemRepo) scanOne(row pgx.Row, op string) (*entity.StockItem, error) {
	var i entity.StockItem
	err := row.Scan(&i.ID, &i.TenantID, &i.Name, &i.SKU, &i.SalePrice,
		&i.StockQuantity, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &i, nil
}
