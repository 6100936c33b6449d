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

	// Errores del motor de nómina.
	ErrEstadoInvalido = errors.New("la nómina no está en un estado que permita la operación")
	ErrNetoNegativo   = errors.New("el neto a pagar es negativo: deducciones superan devengados")
	ErrIBCInvalido    = errors.New("no fue posible calcular el IBC")
	ErrPeriodoCerrado = errors.New("el período de nómina no admite cálculos")
	// ErrParametroFaltante solo aplica en modo estricto: por defecto un
	// parámetro legal ausente aporta cero en silencio.
	ErrParametroFaltante = errors.New("parámetro legal obligatorio sin vigencia configurada")
)
