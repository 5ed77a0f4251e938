package entity

import "time"

// Roles de la aplicación.
const (
	RoleAdmin   = "admin"
	RoleOficina = "oficina"
	RoleTecnico = "tecnico"
)

// User usuario de la aplicación (login), asociado a un tenant.
type User struct {
	ID           string
	TenantID     string
	Email        string
	PasswordHash string
	Name         string
	Role         string // admin | oficina | tecnico
	Status       string // active, disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
