package events

import "errors"

var (
	// ErrNotFound: el id no existe en el almacenamiento (404).
	ErrNotFound = errors.New("event not found")
	// ErrConflict: insert con id duplicado (409).
	ErrConflict = errors.New("event already exists")
	// ErrInvalidInput: campo malformado o fuera de rango (400).
	ErrInvalidInput = errors.New("invalid input")
)
