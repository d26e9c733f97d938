package memory

import (
	"context"

	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// TxRunner transacción en memoria: toma el mutex del Store, guarda un snapshot y lo
// restaura si fn devuelve error.
type TxRunner struct {
	s *Store
}

func (r *TxRunner) run(fn func() error) (err error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	snap := r.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			r.s.restore(snap)
			panic(p)
		}
		if err != nil {
			r.s.restore(snap)
		}
	}()
	return fn()
}

func (r *TxRunner) RunStock(_ context.Context, fn func(products repository.ProductRepository) error) error {
	return r.run(func() error {
		return fn(&ProductRepo{s: r.s, inTx: true})
	})
}

func (r *TxRunner) RunSale(_ context.Context, fn func(
	products repository.ProductRepository,
	sales repository.SaleRepository,
) error) error {
	return r.run(func() error {
		return fn(&ProductRepo{s: r.s, inTx: true}, &SaleRepo{s: r.s, inTx: true})
	})
}
