package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
)

// Fakes en memoria para probar los casos de uso sin Postgres.
// No simulan rollback: las garantías transaccionales se prueban aparte,
// contra la base real.

type fakeStore struct {
	settings  map[string]*entity.TenantSettings
	customers map[string]*entity.Customer
	stock     map[string]*entity.StockItem
	jobs      map[string]*entity.Job
	usages    map[string][]*entity.JobStockUsage
	invoices  map[string]*entity.Invoice
	lines     map[string][]*entity.InvoiceLineItem
	payments  map[string][]*entity.InvoicePayment
	tenants   map[string]*entity.Tenant
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		settings:  map[string]*entity.TenantSettings{},
		customers: map[string]*entity.Customer{},
		stock:     map[string]*entity.StockItem{},
		jobs:      map[string]*entity.Job{},
		usages:    map[string][]*entity.JobStockUsage{},
		invoices:  map[string]*entity.Invoice{},
		lines:     map[string][]*entity.InvoiceLineItem{},
		payments:  map[string][]*entity.InvoicePayment{},
		tenants:   map[string]*entity.Tenant{},
	}
}

// fakeTxRunner ejecuta fn directamente sobre el store compartido.
type fakeTxRunner struct{ store *fakeStore }

func (r *fakeTxRunner) RunInvoice(_ context.Context, fn func(
	repository.SettingsRepository,
	repository.StockItemRepository,
	repository.JobRepository,
	repository.InvoiceRepository,
) error) error {
	return fn(
		&fakeSettingsRepo{r.store},
		&fakeStockRepo{r.store},
		&fakeJobRepo{r.store},
		&fakeInvoiceRepo{r.store},
	)
}

type fakeSettingsRepo struct{ store *fakeStore }

func (r *fakeSettingsRepo) Get(tenantID string) (*entity.TenantSettings, error) {
	return r.store.settings[tenantID], nil
}

func (r *fakeSettingsRepo) NextInvoiceNumber(tenantID string) (string, error) {
	s, ok := r.store.settings[tenantID]
	if !ok {
		return "", domain.ErrSettingsMissing
	}
	seq := s.NextInvoiceSeq
	s.NextInvoiceSeq++
	return fmt.Sprintf("%s%04d", s.InvoicePrefix, seq), nil
}

func (r *fakeSettingsRepo) Upsert(settings *entity.TenantSettings) error {
	r.store.settings[settings.TenantID] = settings
	return nil
}

type fakeStockRepo struct{ store *fakeStore }

func (r *fakeStockRepo) Create(item *entity.StockItem) error {
	r.store.stock[item.ID] = item
	return nil
}

func (r *fakeStockRepo) GetByID(id string) (*entity.StockItem, error) {
	return r.store.stock[id], nil
}

func (r *fakeStockRepo) GetForUpdate(id string) (*entity.StockItem, error) {
	return r.store.stock[id], nil
}

func (r *fakeStockRepo) ListByTenant(string, int, int) ([]*entity.StockItem, error) {
	return nil, nil
}

func (r *fakeStockRepo) UpdateQuantity(id string, quantity decimal.Decimal) error {
	item, ok := r.store.stock[id]
	if !ok {
		return domain.ErrNotFound
	}
	item.StockQuantity = quantity
	return nil
}

func (r *fakeStockRepo) Update(item *entity.StockItem) error {
	r.store.stock[item.ID] = item
	return nil
}

type fakeJobRepo struct{ store *fakeStore }

func (r *fakeJobRepo) Create(job *entity.Job) error {
	r.store.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) GetByID(id string) (*entity.Job, error) {
	return r.store.jobs[id], nil
}

func (r *fakeJobRepo) GetForUpdate(id string) (*entity.Job, error) {
	return r.store.jobs[id], nil
}

func (r *fakeJobRepo) UpdateStatus(id, status string, completedAt *time.Time) error {
	job, ok := r.store.jobs[id]
	if !ok {
		return domain.ErrNotFound
	}
	job.Status = status
	job.CompletedAt = completedAt
	return nil
}

func (r *fakeJobRepo) AddUsedStock(usage *entity.JobStockUsage) error {
	r.store.usages[usage.JobID] = append(r.store.usages[usage.JobID], usage)
	return nil
}

func (r *fakeJobRepo) GetUsedStock(jobID string) ([]*entity.JobStockUsage, error) {
	return r.store.usages[jobID], nil
}

func (r *fakeJobRepo) ListByTenant(string, int, int) ([]*entity.Job, error) { return nil, nil }

func (r *fakeJobRepo) ListCompletedByStaff(string, string, time.Time, time.Time) ([]*entity.Job, error) {
	return nil, nil
}

type fakeInvoiceRepo struct{ store *fakeStore }

func (r *fakeInvoiceRepo) Create(invoice *entity.Invoice) error {
	for _, existing := range r.store.invoices {
		if existing.TenantID == invoice.TenantID && existing.Number == invoice.Number {
			return domain.ErrDuplicate
		}
		if invoice.SourceJobID != "" && existing.SourceJobID == invoice.SourceJobID {
			return domain.ErrDuplicateInvoice
		}
	}
	stored := *invoice
	stored.LineItems = nil
	stored.Payments = nil
	r.store.invoices[invoice.ID] = &stored
	return nil
}

func (r *fakeInvoiceRepo) CreateLineItem(item *entity.InvoiceLineItem) error {
	r.store.lines[item.InvoiceID] = append(r.store.lines[item.InvoiceID], item)
	return nil
}

func (r *fakeInvoiceRepo) CreatePayment(payment *entity.InvoicePayment) error {
	r.store.payments[payment.InvoiceID] = append(r.store.payments[payment.InvoiceID], payment)
	return nil
}

func (r *fakeInvoiceRepo) UpdateDerived(invoice *entity.Invoice) error {
	stored, ok := r.store.invoices[invoice.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Subtotal = invoice.Subtotal
	stored.TaxAmount = invoice.TaxAmount
	stored.Total = invoice.Total
	stored.AmountPaid = invoice.AmountPaid
	stored.BalanceDue = invoice.BalanceDue
	stored.Status = invoice.Status
	stored.UpdatedAt = invoice.UpdatedAt
	return nil
}

func (r *fakeInvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	inv, ok := r.store.invoices[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetForUpdate(id string) (*entity.Invoice, error) {
	return r.GetByID(id)
}

func (r *fakeInvoiceRepo) GetLineItems(invoiceID string) ([]*entity.InvoiceLineItem, error) {
	return r.store.lines[invoiceID], nil
}

func (r *fakeInvoiceRepo) GetPayments(invoiceID string) ([]*entity.InvoicePayment, error) {
	return r.store.payments[invoiceID], nil
}

func (r *fakeInvoiceRepo) ExistsForJob(jobID string) (bool, error) {
	for _, inv := range r.store.invoices {
		if inv.SourceJobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeInvoiceRepo) ListByTenant(tenantID string, limit, offset int) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		if inv.TenantID == tenantID {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) ListDraftJobInvoices(tenantID string) ([]*entity.Invoice, error) {
	var out []*entity.Invoice
	for _, inv := range r.store.invoices {
		if inv.TenantID == tenantID && inv.SourceJobID != "" && inv.Status == entity.InvoiceStatusDraft {
			cp := *inv
			out = append(out, &cp)
		}
	}
	return out, nil
}

type fakeCustomerRepo struct{ store *fakeStore }

func (r *fakeCustomerRepo) Create(customer *entity.Customer) error {
	r.store.customers[customer.ID] = customer
	return nil
}

func (r *fakeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	return r.store.customers[id], nil
}

func (r *fakeCustomerRepo) GetByTenantAndTaxID(tenantID, taxID string) (*entity.Customer, error) {
	for _, c := range r.store.customers {
		if c.TenantID == tenantID && c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCustomerRepo) ListByTenant(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}

func (r *fakeCustomerRepo) Update(customer *entity.Customer) error {
	r.store.customers[customer.ID] = customer
	return nil
}

type fakeTenantRepo struct{ store *fakeStore }

func (r *fakeTenantRepo) Create(tenant *entity.Tenant) error {
	r.store.tenants[tenant.ID] = tenant
	return nil
}

func (r *fakeTenantRepo) GetByID(id string) (*entity.Tenant, error) {
	return r.store.tenants[id], nil
}

func (r *fakeTenantRepo) List(int, int) ([]*entity.Tenant, error) { return nil, nil }

// Aserciones de interfaz: los fakes deben seguir el puerto real.
var (
	_ repository.SettingsRepository  = (*fakeSettingsRepo)(nil)
	_ repository.StockItemRepository = (*fakeStockRepo)(nil)
	_ repository.JobRepository       = (*fakeJobRepo)(nil)
	_ repository.InvoiceRepository   = (*fakeInvoiceRepo)(nil)
	_ repository.CustomerRepository  = (*fakeCustomerRepo)(nil)
	_ repository.TenantRepository    = (*fakeTenantRepo)(nil)
	_ InvoiceTxRunner                = (*fakeTxRunner)(nil)
)

// Datos semilla comunes.

func decp(v string) *decimal.Decimal {
	d := decimal.RequireFromString(v)
	return &d
}

func seedTenant(store *fakeStore) {
	store.tenants["t1"] = &entity.Tenant{ID: "t1", Name: "AgroServicios SAS", NIT: "900123456-7"}
	store.settings["t1"] = &entity.TenantSettings{
		TenantID:          "t1",
		InvoicePrefix:     "INV",
		NextInvoiceSeq:    1,
		TaxRate:           decimal.RequireFromString("0.19"),
		Currency:          "COP",
		InvoiceDueDays:    30,
		DailyThresholdMin: 480,
	}
}

func seedCustomer(store *fakeStore, trigger string, emailEnabled bool) {
	store.customers["c1"] = &entity.Customer{
		ID:                  "c1",
		TenantID:            "t1",
		Name:                "Finca La Esperanza",
		Email:               "finca@example.com",
		InvoiceEmailEnabled: emailEnabled,
		InvoiceTrigger:      trigger,
	}
}
