package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrPermissionDenied  = errors.New("sin permiso para esta página")
	ErrScopeRequired     = errors.New("seleccione un restaurante y un bar")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrLockTimeout       = errors.New("falla temporal, intente nuevamente")
)

// Errores de los flujos de inventario.
var (
	ErrInvalidTransition    = errors.New("la requisición ya fue decidida")
	ErrReasonRequired       = errors.New("informe el motivo de la negación")
	ErrNoCentralLocation    = errors.New("el restaurante no tiene bar central")
	ErrSameLocation         = errors.New("origen y destino deben ser distintos")
	ErrReversalWindowClosed = errors.New("solo se pueden revertir pérdidas del mismo día")
	ErrAlreadyWrittenOff    = errors.New("ya fue dado de baja")
	ErrNotWrittenOff        = errors.New("no estaba dado de baja")
	ErrEventFinalized       = errors.New("el evento ya fue finalizado")
	ErrEventNotFinalized    = errors.New("el evento aún no fue finalizado")
)
