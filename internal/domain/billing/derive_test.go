package billing_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/billing"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// facturaBase: dos unidades a 10.00 con IVA 20%, vencimiento mañana.
func facturaBase(t *testing.T) *entity.Invoice {
	t.Helper()
	inv := &entity.Invoice{
		ID:        "inv-1",
		TenantID:  "t-1",
		Number:    "INV0001",
		IssueDate: time.Now(),
		DueDate:   time.Now().Add(24 * time.Hour),
		TaxRate:   dec("0.2"),
		Status:    entity.InvoiceStatusDraft,
		LineItems: []*entity.InvoiceLineItem{
			{Description: "Filtro de agua", Quantity: dec("2"), UnitPrice: dec("10.00")},
		},
	}
	billing.Recalculate(inv)
	return inv
}

func TestRecalculate_TotalesDesdeLineas(t *testing.T) {
	inv := facturaBase(t)

	assert.True(t, inv.Subtotal.Equal(dec("20.00")), "subtotal = suma de líneas")
	assert.True(t, inv.TaxAmount.Equal(dec("4.00")), "IVA = subtotal * tasa")
	assert.True(t, inv.Total.Equal(dec("24.00")), "total = subtotal + IVA")
	assert.True(t, inv.BalanceDue.Equal(dec("24.00")), "sin pagos, saldo = total")
	assert.True(t, inv.LineItems[0].TotalPrice.Equal(dec("20.00")), "total de línea = cantidad * precio")
}

func TestRecalculate_InvarianteTrasPagos(t *testing.T) {
	inv := facturaBase(t)
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("10.00")})
	billing.Recalculate(inv)

	assert.True(t, inv.AmountPaid.Equal(dec("10.00")))
	assert.True(t, inv.BalanceDue.Equal(dec("14.00")), "saldo = total - pagos")
}

func TestDeriveStatus_PagoTotalMarcaPaid(t *testing.T) {
	inv := facturaBase(t)
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("24.00")})
	billing.Recalculate(inv)
	billing.DeriveStatus(inv, time.Now())

	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	assert.True(t, inv.BalanceDue.LessThanOrEqual(billing.Epsilon), "saldo en cero (dentro de epsilon)")
}

func TestDeriveStatus_PagoParcialMarcaPartiallyPaid(t *testing.T) {
	inv := facturaBase(t)
	inv.Status = entity.InvoiceStatusSent
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("5.00")})
	billing.Recalculate(inv)
	billing.DeriveStatus(inv, time.Now())

	assert.Equal(t, entity.InvoiceStatusPartiallyPaid, inv.Status)
}

func TestDeriveStatus_VencidaSinPagosMarcaOverdue(t *testing.T) {
	inv := facturaBase(t)
	inv.Status = entity.InvoiceStatusSent
	inv.DueDate = time.Now().Add(-48 * time.Hour)
	billing.DeriveStatus(inv, time.Now())

	assert.Equal(t, entity.InvoiceStatusOverdue, inv.Status)
}

func TestDeriveStatus_DraftNoSePromueveSola(t *testing.T) {
	inv := facturaBase(t)
	require.Equal(t, entity.InvoiceStatusDraft, inv.Status)
	billing.DeriveStatus(inv, time.Now())

	assert.Equal(t, entity.InvoiceStatusDraft, inv.Status,
		"draft solo sale por envío o cambio explícito, nunca por derivación")
}

func TestDeriveStatus_EstadosTerminalesSonPegajosos(t *testing.T) {
	for _, status := range []string{entity.InvoiceStatusVoid, entity.InvoiceStatusRefunded} {
		inv := facturaBase(t)
		inv.Status = status
		inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("24.00")})
		billing.Recalculate(inv)
		billing.DeriveStatus(inv, time.Now())

		assert.Equal(t, status, inv.Status, "el estado terminal no debe cambiar por derivación")
	}
}

func TestDeriveStatus_Idempotente(t *testing.T) {
	inv := facturaBase(t)
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("24.00")})
	billing.Recalculate(inv)
	billing.DeriveStatus(inv, time.Now())
	require.Equal(t, entity.InvoiceStatusPaid, inv.Status)

	// Derivaciones repetidas sin nuevos pagos no cambian nada
	for i := 0; i < 3; i++ {
		billing.DeriveStatus(inv, time.Now())
		assert.Equal(t, entity.InvoiceStatusPaid, inv.Status)
	}
}

func TestValidatePayment_MontoNoPositivo(t *testing.T) {
	inv := facturaBase(t)
	assert.ErrorIs(t, billing.ValidatePayment(inv, decimal.Zero), domain.ErrInvalidInput)
	assert.ErrorIs(t, billing.ValidatePayment(inv, dec("-5")), domain.ErrInvalidInput)
}

func TestValidatePayment_FacturaYaSaldada(t *testing.T) {
	inv := facturaBase(t)
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: dec("24.00")})
	billing.Recalculate(inv)

	assert.ErrorIs(t, billing.ValidatePayment(inv, dec("1.00")), domain.ErrAlreadySettled)
}

func TestValidatePayment_Sobrepago(t *testing.T) {
	inv := facturaBase(t)

	// saldo + 0.02 excede la tolerancia
	err := billing.ValidatePayment(inv, inv.BalanceDue.Add(dec("0.02")))
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	// saldo + 0.01 queda dentro de epsilon
	assert.NoError(t, billing.ValidatePayment(inv, inv.BalanceDue.Add(dec("0.01"))))
}

func TestValidatePayment_PagoCasiExactoDentroDeEpsilon(t *testing.T) {
	inv := facturaBase(t)
	pago := inv.BalanceDue.Sub(dec("0.001"))

	require.NoError(t, billing.ValidatePayment(inv, pago))
	inv.Payments = append(inv.Payments, &entity.InvoicePayment{Amount: pago})
	billing.Recalculate(inv)
	billing.DeriveStatus(inv, time.Now())

	assert.Equal(t, entity.InvoiceStatusPaid, inv.Status,
		"un residuo menor a epsilon cuenta como pagada")
}

func TestAllowedExplicitStatus(t *testing.T) {
	assert.True(t, billing.AllowedExplicitStatus(entity.InvoiceStatusDraft))
	assert.True(t, billing.AllowedExplicitStatus(entity.InvoiceStatusSent))
	assert.True(t, billing.AllowedExplicitStatus(entity.InvoiceStatusVoid))
	assert.True(t, billing.AllowedExplicitStatus(entity.InvoiceStatusRefunded))

	assert.False(t, billing.AllowedExplicitStatus(entity.InvoiceStatusPaid),
		"paid solo surge de aplicar pagos")
	assert.False(t, billing.AllowedExplicitStatus(entity.InvoiceStatusPartiallyPaid))
	assert.False(t, billing.AllowedExplicitStatus(entity.InvoiceStatusOverdue))
}
