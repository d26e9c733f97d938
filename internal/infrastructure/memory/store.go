// Package memory implementa los repositorios en memoria. Sirve para correr la API sin
// PostgreSQL (DB_DRIVER=memory) y como doble de prueba de los casos de uso.
package memory

import (
	"sync"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

// Store estado compartido por todos los repositorios en memoria.
// Un único mutex serializa las operaciones; una transacción lo retiene hasta terminar.
type Store struct {
	mu       sync.Mutex
	nextID   int64
	products map[int64]*entity.Product
	sales    []*entity.Sale // orden de inserción
	notified map[entity.LowStockKey]time.Time
	now      func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		products: map[int64]*entity.Product{},
		notified: map[entity.LowStockKey]time.Time{},
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj usado para createdAt/updatedAt.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Sales repositorio de ventas fuera de transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{s: s} }

// LowStock repositorio de avisos de estoque baixo.
func (s *Store) LowStock() *LowStockRepo { return &LowStockRepo{s: s} }

// Analytics consultas del dashboard.
func (s *Store) Analytics() *AnalyticsRepo { return &AnalyticsRepo{s: s} }

// TxRunner transacciones con rollback por snapshot.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// lock toma el mutex salvo que la operación corra dentro de una transacción (ya lo tiene).
func (s *Store) lock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

type snapshot struct {
	nextID   int64
	products map[int64]*entity.Product
	sales    []*entity.Sale
	notified map[entity.LowStockKey]time.Time
}

func (s *Store) snapshot() snapshot {
	snap := snapshot{
		nextID:   s.nextID,
		products: make(map[int64]*entity.Product, len(s.products)),
		sales:    make([]*entity.Sale, len(s.sales)),
		notified: make(map[entity.LowStockKey]time.Time, len(s.notified)),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	for i, sale := range s.sales {
		snap.sales[i] = cloneSale(sale)
	}
	for k, v := range s.notified {
		snap.notified[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.nextID = snap.nextID
	s.products = snap.products
	s.sales = snap.sales
	s.notified = snap.notified
}

func cloneProduct(p *entity.Product) *entity.Product {
	if p == nil {
		return nil
	}
	c := *p
	if p.Brand != nil {
		b := *p.Brand
		c.Brand = &b
	}
	if p.ExpiresAt != nil {
		e := *p.ExpiresAt
		c.ExpiresAt = &e
	}
	return &c
}

func cloneSale(s *entity.Sale) *entity.Sale {
	if s == nil {
		return nil
	}
	c := *s
	if s.IdempotencyKey != nil {
		k := *s.IdempotencyKey
		c.IdempotencyKey = &k
	}
	c.Items = append([]entity.SaleItem(nil), s.Items...)
	return &c
}
