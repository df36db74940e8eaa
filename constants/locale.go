package constants

import "time"

// Placeholders used when a source field is blank or a join finds nothing.
const (
	NoName     = "Sin Nombre"
	NoCategory = "Sin Categoria"
	NoBrand    = "Sin Marca"
	NotAvail   = "N/A"

	Yes       = "Si"
	YesAccent = "Sí"
	No        = "No"
)

// LocalRegionPrefix marks Bahía Blanca postal codes.
const LocalRegionPrefix = "8000"

// weekdayNames maps Go weekdays to their Spanish names.
var weekdayNames = map[time.Weekday]string{
	time.Monday:    "Lunes",
	time.Tuesday:   "Martes",
	time.Wednesday: "Miércoles",
	time.Thursday:  "Jueves",
	time.Friday:    "Viernes",
	time.Saturday:  "Sábado",
	time.Sunday:    "Domingo",
}

// WeekdayName returns the Spanish name for a weekday.
func WeekdayName(d time.Weekday) string {
	if name, ok := weekdayNames[d]; ok {
		return name
	}
	return NotAvail
}
