package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/inventory"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/domain/entity"
	domaininv "github.com/jhoicas/pdv-api/internal/domain/inventory"
	"github.com/jhoicas/pdv-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. El id numérico identifica al producto;
// el SKU es único y sirve para la búsqueda del lector de código de barras.
type ProductUseCase struct {
	repo     repository.ProductRepository
	lowStock inventory.LowStockTrigger
}

// NewProductUseCase construye el caso de uso. lowStock puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, lowStock inventory.LowStockTrigger) *ProductUseCase {
	if lowStock == nil {
		lowStock = inventory.NopTrigger{}
	}
	return &ProductUseCase{repo: repo, lowStock: lowStock}
}

// Create crea un producto. Estoque null = sin control de cantidad.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	product, err := buildProduct(in)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	if product.Stock.IsTracked() {
		uc.lowStock.Trigger(ctx)
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por id.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, productNotFound(id)
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetBySKU búsqueda secundaria por SKU (lector de código de barras).
func (uc *ProductUseCase) GetBySKU(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	sku = strings.TrimSpace(sku)
	if sku == "" {
		return nil, domain.NewValidationError("sku", "SKU é obrigatório")
	}
	product, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.NotFoundError{Resource: "produto", SKU: sku}
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// List devuelve el catálogo, los más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.ToProductResponse(p))
	}
	return items, nil
}

// Update sobrescribe todos los campos editables, estoque incluido.
func (uc *ProductUseCase) Update(ctx context.Context, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.ID <= 0 {
		return nil, domain.NewValidationError("id", "ID do produto é obrigatório")
	}
	product, err := buildProduct(in.CreateProductRequest)
	if err != nil {
		return nil, err
	}
	current, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, productNotFound(in.ID)
	}
	product.ID = current.ID
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.lowStock.Trigger(ctx)
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Delete elimina un producto por id. Las ventas conservan su snapshot del producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("id", "ID do produto é obrigatório")
	}
	deleted, err := uc.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return productNotFound(id)
	}
	return nil
}

func buildProduct(in dto.CreateProductRequest) (*entity.Product, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	sku := strings.TrimSpace(in.SKU)
	switch {
	case name == "":
		return nil, domain.NewValidationError("nome", "Nome é obrigatório")
	case category == "":
		return nil, domain.NewValidationError("categoria", "Categoria é obrigatória")
	case sku == "":
		return nil, domain.NewValidationError("sku", "SKU é obrigatório")
	case !in.Price.IsPositive():
		return nil, domain.NewValidationError("preco", "Preço deve ser maior que zero")
	}

	var expiresAt *time.Time
	if in.ExpiresAt != nil {
		d := domaininv.NormalizeExpiry(*in.ExpiresAt)
		expiresAt = &d
	}
	var brand *string
	if in.Brand != nil {
		if b := strings.TrimSpace(*in.Brand); b != "" {
			brand = &b
		}
	}
	return &entity.Product{
		SKU:       sku,
		Name:      name,
		Brand:     brand,
		Category:  category,
		Price:     in.Price.Round(2),
		Stock:     in.Stock,
		ExpiresAt: expiresAt,
	}, nil
}

func productNotFound(id int64) error {
	return &domain.NotFoundError{Resource: "produto", ID: strconv.FormatInt(id, 10)}
}
