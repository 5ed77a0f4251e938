// Package usecase agrupa los casos de uso de soporte del dominio: clientes,
// trabajos, inventario, personal y registros de jornada.
package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// CustomerUseCase gestión de clientes del tenant.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, log: log}
}

// Create registra un cliente. El NIT/Cédula es único dentro del tenant.
func (uc *CustomerUseCase) Create(tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validTrigger(in.InvoiceTrigger) {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.customerRepo.GetByTenantAndTaxID(tenantID, in.TaxID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:                  uuid.New().String(),
		TenantID:            tenantID,
		Name:                in.Name,
		TaxID:               in.TaxID,
		Email:               in.Email,
		Phone:               in.Phone,
		Address:             in.Address,
		InvoiceEmailEnabled: in.InvoiceEmailEnabled,
		InvoiceTrigger:      in.InvoiceTrigger,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("customer", customer.ID).Msg("cliente creado")
	return toCustomerResponse(customer), nil
}

// GetByID devuelve un cliente del tenant.
func (uc *CustomerUseCase) GetByID(tenantID, customerID string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List devuelve los clientes del tenant, paginados.
func (uc *CustomerUseCase) List(tenantID string, limit, offset int) ([]dto.CustomerResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	customers, err := uc.customerRepo.ListByTenant(tenantID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		out = append(out, *toCustomerResponse(c))
	}
	return out, nil
}

// Update actualiza los datos y preferencias de facturación del cliente.
func (uc *CustomerUseCase) Update(tenantID, customerID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" || in.TaxID == "" || !validTrigger(in.InvoiceTrigger) {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	customer.Name = in.Name
	customer.TaxID = in.TaxID
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.InvoiceEmailEnabled = in.InvoiceEmailEnabled
	customer.InvoiceTrigger = in.InvoiceTrigger
	customer.UpdatedAt = time.Now()

	if err := uc.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

func validTrigger(trigger string) bool {
	switch trigger {
	case "", entity.TriggerOnCompletion, entity.TriggerWeekly, entity.TriggerMonthly:
		return true
	}
	return false
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:                  c.ID,
		TenantID:            c.TenantID,
		Name:                c.Name,
		TaxID:               c.TaxID,
		Email:               c.Email,
		Phone:               c.Phone,
		Address:             c.Address,
		InvoiceEmailEnabled: c.InvoiceEmailEnabled,
		InvoiceTrigger:      c.InvoiceTrigger,
	}
}
