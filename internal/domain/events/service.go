package events

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Service es la orquestación fina sobre el repositorio de una variante:
// en Create acuña el id (ULID, ordenable lexicográficamente por tiempo
// de creación) y aplica defaults; el resto delega sin lógica extra.
// Existe como punto de extensión para reglas de negocio futuras.
type Service[T Record[T]] struct {
	repo Repository[T]
	log  *zap.Logger
	now  func() time.Time
}

func NewService[T Record[T]](repo Repository[T], log *zap.Logger) *Service[T] {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service[T]{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// newID acuña un ULID con el reloj del servicio. La entropía por
// defecto es monotónica, así que ids de un mismo milisegundo conservan
// el orden de creación.
func (s *Service[T]) newID() string {
	return ulid.MustNew(ulid.Timestamp(s.now()), ulid.DefaultEntropy()).String()
}

// Create valida el registro, le asigna un id nuevo (cualquier id que
// venga del caller se ignora) y lo inserta.
func (s *Service[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	rec = rec.Normalized()
	b := rec.Base()
	b.Type = rec.Kind()
	b.ID = s.newID()
	rec = rec.WithBase(b).Normalized()

	if err := rec.Validate(); err != nil {
		return zero, err
	}

	s.log.Debug("creating event",
		zap.String("event_id", b.ID),
		zap.String("event_type", string(rec.Kind())),
	)

	return s.repo.Insert(ctx, rec)
}

func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

func (s *Service[T]) List(ctx context.Context, filter ListFilter) (int, []T, error) {
	return s.repo.List(ctx, filter)
}

// Update reemplaza todos los campos salvo el id; el id del path manda
// sobre cualquier id del cuerpo.
func (s *Service[T]) Update(ctx context.Context, id string, rec T) (T, error) {
	var zero T
	id = strings.TrimSpace(id)
	if id == "" {
		return zero, ErrNotFound
	}

	rec = rec.Normalized()
	b := rec.Base()
	b.Type = rec.Kind()
	b.ID = id
	rec = rec.WithBase(b).Normalized()

	if err := rec.Validate(); err != nil {
		return zero, err
	}

	s.log.Debug("updating event", zap.String("event_id", id))

	return s.repo.Update(ctx, id, rec)
}

func (s *Service[T]) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	s.log.Debug("deleting event", zap.String("event_id", id))

	return s.repo.Delete(ctx, id)
}
