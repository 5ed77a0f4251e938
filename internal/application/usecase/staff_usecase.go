package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/jhoicas/ServiCampo-api/internal/application/dto"
	"github.com/jhoicas/ServiCampo-api/internal/domain"
	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
	"github.com/jhoicas/ServiCampo-api/internal/domain/repository"
	"github.com/jhoicas/ServiCampo-api/pkg/logger"
)

// StaffUseCase gestión del personal y sus modelos de pago.
type StaffUseCase struct {
	staffRepo repository.StaffRepository
	log       *logger.Logger
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(staffRepo repository.StaffRepository, log *logger.Logger) *StaffUseCase {
	return &StaffUseCase{staffRepo: staffRepo, log: log}
}

// Create registra personal con su modelo de pago. Las tarifas que no aplican
// al modelo se ignoran y quedan en cero.
func (uc *StaffUseCase) Create(tenantID string, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	staff := &entity.Staff{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Name:        in.Name,
		Email:       in.Email,
		PayRateType: in.PayRateType,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := applyRates(staff, in); err != nil {
		return nil, err
	}
	if err := uc.staffRepo.Create(staff); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("staff", staff.ID).Str("pay_rate_type", staff.PayRateType).Msg("personal registrado")
	return toStaffResponse(staff), nil
}

// GetByID devuelve un miembro del personal del tenant.
func (uc *StaffUseCase) GetByID(tenantID, staffID string) (*dto.StaffResponse, error) {
	staff, err := uc.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	return toStaffResponse(staff), nil
}

// List devuelve el personal activo del tenant.
func (uc *StaffUseCase) List(tenantID string) ([]dto.StaffResponse, error) {
	staff, err := uc.staffRepo.ListActive(tenantID, nil)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(staff))
	for _, s := range staff {
		out = append(out, *toStaffResponse(s))
	}
	return out, nil
}

// Update actualiza datos y modelo de pago. El cambio de modelo afecta solo a
// corridas futuras: las liquidaciones existentes son inmutables.
func (uc *StaffUseCase) Update(tenantID, staffID string, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	staff, err := uc.staffRepo.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}

	staff.Name = in.Name
	staff.Email = in.Email
	staff.PayRateType = in.PayRateType
	if err := applyRates(staff, in); err != nil {
		return nil, err
	}
	staff.UpdatedAt = time.Now()

	if err := uc.staffRepo.Update(staff); err != nil {
		return nil, err
	}
	return toStaffResponse(staff), nil
}

var hundredPercent = decimal.NewFromInt(100)

// applyRates fija las tarifas según el modelo y valida sus rangos.
// Las tarifas de modelos que no aplican quedan en cero.
func applyRates(staff *entity.Staff, in dto.CreateStaffRequest) error {
	staff.HourlyRate = decimal.Zero
	staff.JobFixedAmount = decimal.Zero
	staff.JobPercentage = decimal.Zero

	switch in.PayRateType {
	case entity.PayRateHourly:
		if in.HourlyRate.IsNegative() {
			return domain.ErrInvalidInput
		}
		staff.HourlyRate = in.HourlyRate
	case entity.PayRateFixedJob, entity.PayRateDaily:
		if in.JobFixedAmount.IsNegative() {
			return domain.ErrInvalidInput
		}
		staff.JobFixedAmount = in.JobFixedAmount
	case entity.PayRatePercentJob:
		if in.JobPercentage.IsNegative() || in.JobPercentage.GreaterThan(hundredPercent) {
			return domain.ErrInvalidInput
		}
		staff.JobPercentage = in.JobPercentage
	case "":
		// sin configurar: nómina en cero hasta que se asigne
	default:
		return domain.ErrInvalidInput
	}
	return nil
}

func toStaffResponse(s *entity.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:             s.ID,
		TenantID:       s.TenantID,
		Name:           s.Name,
		Email:          s.Email,
		PayRateType:    s.PayRateType,
		HourlyRate:     s.HourlyRate,
		JobFixedAmount: s.JobFixedAmount,
		JobPercentage:  s.JobPercentage,
		Active:         s.Active,
	}
}
