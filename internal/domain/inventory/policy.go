package inventory

import (
	"strings"
	"time"
)

// Thresholds mínimos de estoque por categoría con un valor por defecto.
type Thresholds struct {
	Default    int
	ByCategory map[string]int
}

// MinimumFor devuelve el mínimo de la categoría. Busca primero coincidencia exacta
// y luego ignorando mayúsculas y espacios; si no hay, usa Default.
func (t Thresholds) MinimumFor(category string) int {
	if n, ok := t.ByCategory[category]; ok {
		return n
	}
	want := strings.TrimSpace(category)
	for name, n := range t.ByCategory {
		if strings.EqualFold(strings.TrimSpace(name), want) {
			return n
		}
	}
	return t.Default
}

// StartOfDay devuelve la medianoche de t en loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// ExpiryDate devuelve la fecha de calendario de una validade. La validade se guarda
// como medianoche UTC de su día; el driver puede devolverla en otra zona.
func ExpiryDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NormalizeExpiry lleva una validade recibida del cliente a medianoche UTC del día que
// el cliente indicó (el de su propio offset).
func NormalizeExpiry(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today fecha de calendario de now en la zona de la tienda, a medianoche UTC para
// compararla con validades.
func Today(now time.Time, loc *time.Location) time.Time {
	y, m, d := StartOfDay(now, loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ExpiryWindow rango [hoy, hoy+days+1) en fechas de validade: desde hoy (según loc)
// hasta el final del día hoy+days.
func ExpiryWindow(now time.Time, days int, loc *time.Location) (from, to time.Time) {
	from = Today(now, loc)
	to = from.AddDate(0, 0, days+1)
	return from, to
}

// DaysUntil días de calendario entre hoy (según loc) y la validade (0 = vence hoje).
func DaysUntil(expiry, now time.Time, loc *time.Location) int {
	return int(ExpiryDate(expiry).Sub(Today(now, loc)).Hours() / 24)
}
