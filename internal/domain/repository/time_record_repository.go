package repository

import (
	"time"

	"github.com/jhoicas/ServiCampo-api/internal/domain/entity"
)

// TimeRecordRepository define el puerto de persistencia para TimeRecord.
type TimeRecordRepository interface {
	Create(record *entity.TimeRecord) error
	GetByID(id string) (*entity.TimeRecord, error)
	CloseRecord(id string, clockOut time.Time, totalMinutes int) error
	// ListClosedByStaff devuelve registros con entrada y salida dentro del
	// período [start, end) para nómina.
	ListClosedByStaff(tenantID, staffID string, start, end time.Time) ([]*entity.TimeRecord, error)
}
