package events

// Type es el discriminador del evento: selecciona qué tabla de extensión
// (si alguna) acompaña a la fila base.
type Type string

const (
	TypeFeedBottle   Type = "feed_bottle"
	TypeFeedBreast   Type = "feed_breast"
	TypeDiaperChange Type = "diaper_change"
	TypePump         Type = "pump"
)

func (t Type) valid() bool {
	switch t {
	case TypeFeedBottle, TypeFeedBreast, TypeDiaperChange, TypePump:
		return true
	}
	return false
}

// defaultDescription devuelve la descripción por defecto según el tipo.
func defaultDescription(t Type) string {
	switch t {
	case TypeFeedBottle:
		return "Bottle feed event"
	case TypeFeedBreast:
		return "Breast feed event"
	case TypeDiaperChange:
		return "Diaper change event"
	case TypePump:
		return "Pump event"
	default:
		return ""
	}
}

// BreastSide indica el lado usado en una toma de pecho.
type BreastSide string

const (
	SideLeft  BreastSide = "left"
	SideRight BreastSide = "right"
	SideBoth  BreastSide = "both"
)

func (s BreastSide) valid() bool {
	switch s {
	case SideLeft, SideRight, SideBoth:
		return true
	}
	return false
}

// DiaperType clasifica el contenido del pañal.
type DiaperType string

const (
	DiaperPee  DiaperType = "pee"
	DiaperPoop DiaperType = "poop"
	DiaperBoth DiaperType = "both"
)

func (d DiaperType) valid() bool {
	switch d {
	case DiaperPee, DiaperPoop, DiaperBoth:
		return true
	}
	return false
}

// hasPoop: solo estos tipos admiten detalles de contenido.
func (d DiaperType) hasPoop() bool {
	return d == DiaperPoop || d == DiaperBoth
}

type DiaperColor string

const (
	ColorYellow DiaperColor = "yellow"
	ColorBrown  DiaperColor = "brown"
	ColorGreen  DiaperColor = "green"
	ColorBlack  DiaperColor = "black"
)

func (c DiaperColor) valid() bool {
	switch c {
	case ColorYellow, ColorBrown, ColorGreen, ColorBlack:
		return true
	}
	return false
}

type DiaperConsistency string

const (
	ConsistencyWatery DiaperConsistency = "watery"
	ConsistencyPasty  DiaperConsistency = "pasty"
)

func (c DiaperConsistency) valid() bool {
	return c == ConsistencyWatery || c == ConsistencyPasty
}

type DiaperSize string

const (
	SizeSmall  DiaperSize = "small"
	SizeMedium DiaperSize = "medium"
	SizeLarge  DiaperSize = "large"
)

func (s DiaperSize) valid() bool {
	switch s {
	case SizeSmall, SizeMedium, SizeLarge:
		return true
	}
	return false
}
