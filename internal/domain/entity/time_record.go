package entity

import "time"

// TimeRecord registro de jornada de un miembro del personal.
// TotalMinutes solo es válido cuando hay entrada y salida; los registros
// abiertos (sin ClockOut) no cuentan para nómina.
type TimeRecord struct {
	ID           string
	TenantID     string
	StaffID      string
	ClockIn      time.Time
	ClockOut     *time.Time
	TotalMinutes int
	CreatedAt    time.Time
}

// Closed indica si el registro tiene entrada y salida.
func (t *TimeRecord) Closed() bool {
	return t.ClockOut != nil
}
