package events

import (
	"fmt"
	"time"
)

// Event contiene los campos compartidos por todos los eventos del bebé.
// También es el registro "genérico" que expone la superficie /events:
// sirve como variante sin extensión dentro de la unión etiquetada.
type Event struct {
	ID          string     `json:"id"`
	Type        Type       `json:"name"`
	Description string     `json:"description"`
	TimeStart   time.Time  `json:"time_start"`
	TimeEnd     *time.Time `json:"time_end"`
	Notes       string     `json:"notes"`
}

func (e Event) Kind() Type             { return e.Type }
func (e Event) Base() Event            { return e }
func (e Event) WithBase(b Event) Event { return b }

func (e Event) Normalized() Event {
	if e.Description == "" {
		e.Description = defaultDescription(e.Type)
	}
	return e
}

func (e Event) Validate() error {
	return e.validateBase()
}

// validateBase valida los campos compartidos. time_end, cuando existe,
// debe ser >= time_start.
func (e Event) validateBase() error {
	if !e.Type.valid() {
		return fmt.Errorf("unknown event type %q: %w", e.Type, ErrInvalidInput)
	}
	if e.TimeStart.IsZero() {
		return fmt.Errorf("time_start is required: %w", ErrInvalidInput)
	}
	if e.TimeEnd != nil && e.TimeEnd.Before(e.TimeStart) {
		return fmt.Errorf("time_end before time_start: %w", ErrInvalidInput)
	}
	return nil
}

// BottleFeed es una toma con biberón: mililitros enteros y si fue
// fórmula (true) o leche materna extraída (false).
type BottleFeed struct {
	Event
	AmountML  int  `json:"amount_ml"`
	IsFormula bool `json:"is_formula"`
}

func (e BottleFeed) Kind() Type { return TypeFeedBottle }

func (e BottleFeed) WithBase(b Event) BottleFeed {
	e.Event = b
	return e
}

func (e BottleFeed) Normalized() BottleFeed {
	e.Event = e.Event.Normalized()
	return e
}

func (e BottleFeed) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.AmountML < 0 {
		return fmt.Errorf("amount_ml must be >= 0: %w", ErrInvalidInput)
	}
	return nil
}

// BreastFeed es una toma al pecho.
type BreastFeed struct {
	Event
	Side BreastSide `json:"side"`
}

func (e BreastFeed) Kind() Type { return TypeFeedBreast }

func (e BreastFeed) WithBase(b Event) BreastFeed {
	e.Event = b
	return e
}

func (e BreastFeed) Normalized() BreastFeed {
	e.Event = e.Event.Normalized()
	if e.Side == "" {
		e.Side = SideBoth
	}
	return e
}

func (e BreastFeed) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if !e.Side.valid() {
		return fmt.Errorf("unknown breast side %q: %w", e.Side, ErrInvalidInput)
	}
	return nil
}

// Diaper es un cambio de pañal. Los detalles de contenido solo aplican
// cuando el tipo incluye caca.
type Diaper struct {
	Event
	DiaperType  DiaperType         `json:"diaper_type"`
	Color       *DiaperColor       `json:"diaper_contents_color"`
	Consistency *DiaperConsistency `json:"diaper_contents_consistency"`
	Size        *DiaperSize        `json:"diaper_contents_size"`
}

func (e Diaper) Kind() Type { return TypeDiaperChange }

func (e Diaper) WithBase(b Event) Diaper {
	e.Event = b
	return e
}

func (e Diaper) Normalized() Diaper {
	e.Event = e.Event.Normalized()
	return e
}

func (e Diaper) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if !e.DiaperType.valid() {
		return fmt.Errorf("unknown diaper type %q: %w", e.DiaperType, ErrInvalidInput)
	}
	if !e.DiaperType.hasPoop() {
		if e.Color != nil || e.Consistency != nil || e.Size != nil {
			return fmt.Errorf("diaper contents fields require poop: %w", ErrInvalidInput)
		}
		return nil
	}
	if e.Color != nil && !e.Color.valid() {
		return fmt.Errorf("unknown diaper contents color %q: %w", *e.Color, ErrInvalidInput)
	}
	if e.Consistency != nil && !e.Consistency.valid() {
		return fmt.Errorf("unknown diaper contents consistency %q: %w", *e.Consistency, ErrInvalidInput)
	}
	if e.Size != nil && !e.Size.valid() {
		return fmt.Errorf("unknown diaper contents size %q: %w", *e.Size, ErrInvalidInput)
	}
	return nil
}

// Pump es una sesión de extracción.
type Pump struct {
	Event
	AmountML float64 `json:"amount_ml"`
}

func (e Pump) Kind() Type { return TypePump }

func (e Pump) WithBase(b Event) Pump {
	e.Event = b
	return e
}

func (e Pump) Normalized() Pump {
	e.Event = e.Event.Normalized()
	return e
}

func (e Pump) Validate() error {
	if err := e.validateBase(); err != nil {
		return err
	}
	if e.AmountML < 0 {
		return fmt.Errorf("amount_ml must be >= 0: %w", ErrInvalidInput)
	}
	return nil
}
