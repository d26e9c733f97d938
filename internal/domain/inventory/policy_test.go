package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/internal/domain/inventory"
)

func TestThresholds_MinimumFor(t *testing.T) {
	th := inventory.Thresholds{
		Default:    10,
		ByCategory: map[string]int{"Eletrônicos": 5, "Roupas": 15, "Alimentação": 20},
	}

	assert.Equal(t, 5, th.MinimumFor("Eletrônicos"))
	assert.Equal(t, 15, th.MinimumFor(" roupas "), "la búsqueda ignora mayúsculas y espacios")
	assert.Equal(t, 10, th.MinimumFor("Papelaria"), "categoría sin configuración usa el default")
}

func TestExpiryWindow_CubreHastaFinalDelSeptimoDia(t *testing.T) {
	loc := time.UTC
	now := time.Date(2026, 3, 10, 15, 30, 0, 0, loc)

	from, to := inventory.ExpiryWindow(now, 7, loc)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, loc), to)
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		return time.FixedZone("BRT", -3*3600)
	}
	return loc
}

func TestDaysUntil(t *testing.T) {
	loc := saoPaulo(t)
	// 23:50 en São Paulo ya es el día 11 en UTC; hoy sigue siendo el 10.
	now := time.Date(2026, 3, 10, 23, 50, 0, 0, loc)
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }

	assert.Equal(t, 0, inventory.DaysUntil(day(10), now, loc))
	assert.Equal(t, 1, inventory.DaysUntil(day(11), now, loc))
	assert.Equal(t, 3, inventory.DaysUntil(day(13), now, loc))
	assert.Equal(t, -1, inventory.DaysUntil(day(9), now, loc))
}

func TestExpiryDate_IgnoraZonaDelDriver(t *testing.T) {
	loc := saoPaulo(t)
	stored := time.Date(2026, 6, 3, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, stored, inventory.ExpiryDate(stored.In(loc)), "pgx puede devolver 02/06 21:00 local")
	assert.Equal(t, stored, inventory.NormalizeExpiry(time.Date(2026, 6, 3, 23, 0, 0, 0, loc)),
		"se respeta el día que indicó el cliente")
}

func TestExpiryWindow_ZonaDeLaTienda(t *testing.T) {
	loc := saoPaulo(t)
	// 22:00 del 1 de junio en São Paulo = 01:00 UTC del 2.
	now := time.Date(2026, 6, 2, 1, 0, 0, 0, time.UTC)

	from, to := inventory.ExpiryWindow(now, 7, loc)

	assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2026, 6, 9, 0, 0, 0, 0, time.UTC), to)
}
