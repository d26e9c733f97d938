package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo catálogo en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	if r.findSKU(p.SKU) != nil {
		return domain.ErrDuplicate
	}
	r.s.nextID++
	now := r.s.now()
	p.ID = r.s.nextID
	p.CreatedAt, p.UpdatedAt = now, now
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) findSKU(sku string) *entity.Product {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p
		}
	}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	return cloneProduct(r.s.products[id]), nil
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	return cloneProduct(r.findSKU(strings.TrimSpace(sku))), nil
}

// GetByIDForUpdate dentro de una transacción el mutex ya está tomado; equivale a GetByID.
func (r *ProductRepo) GetByIDForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKUForUpdate(ctx context.Context, sku string) (*entity.Product, error) {
	return r.GetBySKU(ctx, sku)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.lock(r.inTx)()
	cur, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if other := r.findSKU(p.SKU); other != nil && other.ID != p.ID {
		return domain.ErrDuplicate
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = r.s.now()
	r.s.products[p.ID] = cloneProduct(p)
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id int64, stock entity.Stock) error {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = stock
	p.UpdatedAt = r.s.now()
	return nil
}

func (r *ProductRepo) DecrementStock(_ context.Context, id int64, qty int) (bool, error) {
	defer r.s.lock(r.inTx)()
	p, ok := r.s.products[id]
	if !ok {
		return false, nil
	}
	next, ok := p.Stock.Decrement(qty)
	if !ok {
		return false, nil
	}
	p.Stock = next
	p.UpdatedAt = r.s.now()
	return true, nil
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	return r.sorted(func(*entity.Product) bool { return true }, func(a, b *entity.Product) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	}), nil
}

func (r *ProductRepo) ListTracked(_ context.Context) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	return r.sorted(func(p *entity.Product) bool { return p.Stock.IsTracked() }, func(a, b *entity.Product) bool {
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.SKU < b.SKU
	}), nil
}

func (r *ProductRepo) ListExpiring(_ context.Context, from, to time.Time) ([]*entity.Product, error) {
	defer r.s.lock(r.inTx)()
	return r.sorted(func(p *entity.Product) bool {
		return p.ExpiresAt != nil && !p.ExpiresAt.Before(from) && p.ExpiresAt.Before(to) && p.Stock.Positive()
	}, func(a, b *entity.Product) bool {
		if !a.ExpiresAt.Equal(*b.ExpiresAt) {
			return a.ExpiresAt.Before(*b.ExpiresAt)
		}
		return a.SKU < b.SKU
	}), nil
}

func (r *ProductRepo) Delete(_ context.Context, id int64) (bool, error) {
	defer r.s.lock(r.inTx)()
	if _, ok := r.s.products[id]; !ok {
		return false, nil
	}
	delete(r.s.products, id)
	for k := range r.s.notified {
		if k.ProductID == id {
			delete(r.s.notified, k)
		}
	}
	return true, nil
}

func (r *ProductRepo) sorted(keep func(*entity.Product) bool, less func(a, b *entity.Product) bool) []*entity.Product {
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		if keep(p) {
			out = append(out, cloneProduct(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
