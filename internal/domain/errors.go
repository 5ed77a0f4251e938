package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")

	// Facturación
	ErrSettingsMissing  = errors.New("configuración de facturación del tenant no encontrada")
	ErrInvalidJobState  = errors.New("el trabajo no está en estado completado")
	ErrDuplicateInvoice = errors.New("el trabajo ya tiene una factura")
	ErrNoBillableItems  = errors.New("el trabajo no tiene conceptos facturables")
	ErrAlreadySettled   = errors.New("la factura ya está pagada")
	ErrOverpayment      = errors.New("el pago excede el saldo pendiente")
	ErrInvalidStatus    = errors.New("transición de estado no permitida")
)
