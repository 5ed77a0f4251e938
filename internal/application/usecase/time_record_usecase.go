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

// TimeRecordUseCase registro de jornadas (entrada/salida) del personal.
type TimeRecordUseCase struct {
	timeRepo  repository.TimeRecordRepository
	staffRepo repository.StaffRepository
	log       *logger.Logger
	now       func() time.Time // inyectable en tests
}

// NewTimeRecordUseCase construye el caso de uso.
func NewTimeRecordUseCase(timeRepo repository.TimeRecordRepository, staffRepo repository.StaffRepository, log *logger.Logger) *TimeRecordUseCase {
	return &TimeRecordUseCase{timeRepo: timeRepo, staffRepo: staffRepo, log: log, now: time.Now}
}

// ClockIn abre un registro de jornada para el personal.
func (uc *TimeRecordUseCase) ClockIn(tenantID string, in dto.ClockInRequest) (*dto.TimeRecordResponse, error) {
	if in.StaffID == "" {
		return nil, domain.ErrInvalidInput
	}
	staff, err := uc.staffRepo.GetByID(in.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil || staff.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if !staff.Active {
		return nil, domain.ErrConflict
	}

	now := uc.now()
	record := &entity.TimeRecord{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		StaffID:   staff.ID,
		ClockIn:   now,
		CreatedAt: now,
	}
	if err := uc.timeRepo.Create(record); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant", tenantID).Str("staff", staff.ID).Msg("entrada registrada")
	return toTimeRecordResponse(record), nil
}

// ClockOut cierra el registro y calcula los minutos de la jornada.
func (uc *TimeRecordUseCase) ClockOut(tenantID, recordID string) (*dto.TimeRecordResponse, error) {
	record, err := uc.timeRepo.GetByID(recordID)
	if err != nil {
		return nil, err
	}
	if record == nil || record.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	if record.Closed() {
		return nil, domain.ErrConflict
	}

	now := uc.now()
	if now.Before(record.ClockIn) {
		return nil, domain.ErrInvalidInput
	}
	totalMins := int(now.Sub(record.ClockIn) / time.Minute)
	if err := uc.timeRepo.CloseRecord(recordID, now, totalMins); err != nil {
		return nil, err
	}

	record.ClockOut = &now
	record.TotalMinutes = totalMins
	uc.log.Info().Str("tenant", tenantID).Str("staff", record.StaffID).Int("minutes", totalMins).Msg("salida registrada")
	return toTimeRecordResponse(record), nil
}

func toTimeRecordResponse(r *entity.TimeRecord) *dto.TimeRecordResponse {
	resp := &dto.TimeRecordResponse{
		ID:           r.ID,
		StaffID:      r.StaffID,
		ClockIn:      r.ClockIn.Format(time.RFC3339),
		TotalMinutes: r.TotalMinutes,
	}
	if r.ClockOut != nil {
		resp.ClockOut = r.ClockOut.Format(time.RFC3339)
	}
	return resp
}
