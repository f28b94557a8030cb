package services

import "errors"

// Common service errors
var (
	ErrNotFound        = errors.New("registro no encontrado")
	ErrUnauthorized    = errors.New("no autorizado")
	ErrInvalidState    = errors.New("transición de estado inválida")
	ErrDuplicate       = errors.New("registro duplicado")
	ErrInvalidPassword = errors.New("contraseña inválida")

	// ErrBalanceConsistency means a balance adjustment found no project row
	// for an existing transaction. This is corrupted state, never user error;
	// the triggering mutation is rolled back in full.
	ErrBalanceConsistency = errors.New("inconsistencia de saldo: proyecto inexistente para la transacción")
)
