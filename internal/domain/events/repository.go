package events

import (
	"context"
	"time"
)

// Record es la restricción que cumple cada variante de la unión
// (y Event mismo para la superficie genérica). Las variantes son
// structs por valor; WithBase y Normalized devuelven copias.
type Record[T any] interface {
	Kind() Type
	Base() Event
	WithBase(Event) T
	Normalized() T
	Validate() error
}

// Repository es el contrato CRUD por variante. Insert exige que el id
// venga ya asignado por el caller. Las operaciones mutantes son
// atómicas: fila base + fila de extensión se escriben o deshacen juntas.
type Repository[T any] interface {
	Insert(ctx context.Context, rec T) (T, error)
	Get(ctx context.Context, id string) (T, error)
	// List devuelve (total filtrado, página ordenada por time_start desc).
	List(ctx context.Context, filter ListFilter) (int, []T, error)
	// Update reemplaza todos los campos salvo el id. Último escritor gana:
	// no hay tokens de versión ante updates concurrentes al mismo id.
	Update(ctx context.Context, id string, rec T) (T, error)
	Delete(ctx context.Context, id string) error
}

// ListFilter pagina y filtra por ventana de time_start
// (inclusiva en ambos extremos).
type ListFilter struct {
	Limit  int
	Offset int
	From   *time.Time
	To     *time.Time
}
