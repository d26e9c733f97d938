package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Stock es el estoque de un producto: Tracked(n) con n >= 0, o Untracked (sin control de cantidad).
// El valor cero es Untracked. En la base y en JSON Untracked se representa como null.
type Stock struct {
	qty     int
	tracked bool
}

// TrackedStock crea un estoque controlado. Cantidades negativas se llevan a 0.
func TrackedStock(n int) Stock {
	if n < 0 {
		n = 0
	}
	return Stock{qty: n, tracked: true}
}

// UntrackedStock crea un estoque sin control de cantidad.
func UntrackedStock() Stock { return Stock{} }

// StockFromPtr convierte la columna nullable (o el campo JSON opcional) en Stock.
func StockFromPtr(p *int) Stock {
	if p == nil {
		return UntrackedStock()
	}
	return TrackedStock(*p)
}

// IsTracked indica si el producto controla cantidad.
func (s Stock) IsTracked() bool { return s.tracked }

// Quantity devuelve la cantidad y si el estoque es controlado.
func (s Stock) Quantity() (int, bool) { return s.qty, s.tracked }

// Ptr devuelve la cantidad como puntero (nil si Untracked), para persistir en columnas nullable.
func (s Stock) Ptr() *int {
	if !s.tracked {
		return nil
	}
	n := s.qty
	return &n
}

// Add suma n unidades. Un producto Untracked pasa a Tracked(n).
func (s Stock) Add(n int) Stock {
	return TrackedStock(s.qty + n)
}

// RemoveFloor resta n unidades sin bajar de cero. Un producto Untracked pasa a Tracked(0).
func (s Stock) RemoveFloor(n int) Stock {
	left := s.qty - n
	if left < 0 {
		left = 0
	}
	return TrackedStock(left)
}

// Decrement resta n unidades para una venta. Falla (ok=false) si no alcanza.
// Un producto Untracked siempre puede vender y sigue Untracked.
func (s Stock) Decrement(n int) (next Stock, ok bool) {
	if !s.tracked {
		return s, true
	}
	if s.qty < n {
		return s, false
	}
	return TrackedStock(s.qty - n), true
}

// AtOrBelow indica si un estoque controlado está en o por debajo del mínimo.
func (s Stock) AtOrBelow(min int) bool {
	return s.tracked && s.qty <= min
}

// Positive indica si hay unidades disponibles en un estoque controlado.
func (s Stock) Positive() bool {
	return s.tracked && s.qty > 0
}

func (s Stock) String() string {
	if !s.tracked {
		return "untracked"
	}
	return strconv.Itoa(s.qty)
}

// MarshalJSON número o null.
func (s Stock) MarshalJSON() ([]byte, error) {
	if !s.tracked {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(s.qty)), nil
}

// UnmarshalJSON acepta número entero no negativo o null.
func (s *Stock) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*s = UntrackedStock()
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("estoque debe ser un entero: %w", err)
	}
	if n < 0 {
		return fmt.Errorf("estoque no puede ser negativo")
	}
	*s = TrackedStock(n)
	return nil
}
