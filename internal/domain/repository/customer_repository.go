package repository

import "github.com/jhoicas/ServiCampo-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByTenantAndTaxID(tenantID, taxID string) (*entity.Customer, error)
	ListByTenant(tenantID string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
}
