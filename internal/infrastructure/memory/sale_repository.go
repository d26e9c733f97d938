package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	s    *Store
	inTx bool
}

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.s.lock(r.inTx)()
	if sale.IdempotencyKey != nil {
		for _, existing := range r.s.sales {
			if existing.IdempotencyKey != nil && *existing.IdempotencyKey == *sale.IdempotencyKey {
				return domain.ErrDuplicate
			}
		}
	}
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = r.s.now()
	}
	for i := range sale.Items {
		it := &sale.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SaleID = sale.ID
		it.Position = i + 1
	}
	r.s.sales = append(r.s.sales, cloneSale(sale))
	return nil
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	defer r.s.lock(r.inTx)()
	for _, s := range r.s.sales {
		if s.ID == id {
			return cloneSale(s), nil
		}
	}
	return nil, nil
}

func (r *SaleRepo) GetByIdempotencyKey(_ context.Context, key string) (*entity.Sale, error) {
	defer r.s.lock(r.inTx)()
	for _, s := range r.s.sales {
		if s.IdempotencyKey != nil && *s.IdempotencyKey == key {
			return cloneSale(s), nil
		}
	}
	return nil, nil
}

// ListRecent recorre en orden inverso de inserción; a igual createdAt gana la última insertada.
func (r *SaleRepo) ListRecent(_ context.Context, limit int) ([]*entity.Sale, error) {
	defer r.s.lock(r.inTx)()
	if limit <= 0 || limit > repository.MaxSalesListed {
		limit = repository.MaxSalesListed
	}
	out := make([]*entity.Sale, 0, limit)
	for i := len(r.s.sales) - 1; i >= 0; i-- {
		out = append(out, cloneSale(r.s.sales[i]))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *SaleRepo) ListBetween(_ context.Context, from, to time.Time) ([]*entity.Sale, error) {
	defer r.s.lock(r.inTx)()
	var out []*entity.Sale
	for _, s := range r.s.sales {
		if !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			out = append(out, cloneSale(s))
		}
	}
	return out, nil
}

func (r *SaleRepo) DeleteAll(_ context.Context) (int64, error) {
	defer r.s.lock(r.inTx)()
	n := int64(len(r.s.sales))
	r.s.sales = nil
	return n, nil
}
