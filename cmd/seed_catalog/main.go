// seed_catalog importa un catálogo de productos desde CSV (UTF-8 o Windows-1252, separado por ';' o ',').
//
// Uso: go run ./cmd/seed_catalog [-encoding auto|utf8|cp1252] [-update] [-dry-run] catalogo.csv
//
// Cabecera: sku;nome;marca;categoria;preco;estoque;validade (marca, estoque y validade opcionales).
// estoque vacío = producto sin control de estoque. Con -update los SKU existentes se sobrescriben.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/pdv-api/internal/application/dto"
	"github.com/jhoicas/pdv-api/internal/application/usecase"
	"github.com/jhoicas/pdv-api/internal/domain"
	"github.com/jhoicas/pdv-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pdv-api/pkg/config"
	"github.com/jhoicas/pdv-api/pkg/logger"
)

func main() {
	encoding := flag.String("encoding", "auto", "codificação do arquivo: auto, utf8 ou cp1252")
	update := flag.Bool("update", false, "sobrescrever produtos com SKU já cadastrado")
	dryRun := flag.Bool("dry-run", false, "apenas validar o arquivo")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog [-encoding auto|utf8|cp1252] [-update] [-dry-run] catalogo.csv")
		os.Exit(2)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	content, err := decodeInput(raw, *encoding)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codificação: %v\n", err)
		os.Exit(1)
	}
	products, bad, err := parseCatalog(content)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ler CSV: %v\n", err)
		os.Exit(1)
	}
	for _, e := range bad {
		fmt.Fprintf(os.Stderr, "Ignorada: %v\n", e)
	}
	if *dryRun {
		fmt.Printf("%d produtos válidos, %d linhas com erro\n", len(products), len(bad))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuração: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if _, err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := usecase.NewProductUseCase(postgres.NewProductRepository(pool), nil)
	created, updated, skipped, failed := importProducts(ctx, uc, products, *update)
	log.Info().
		Int("creados", created).
		Int("actualizados", updated).
		Int("omitidos", skipped).
		Int("fallidos", failed+len(bad)).
		Msg("importación de catálogo terminada")
	if failed > 0 {
		os.Exit(1)
	}
}

// importProducts crea cada producto; un SKU existente se omite o, con update, se sobrescribe.
func importProducts(ctx context.Context, uc *usecase.ProductUseCase, products []dto.CreateProductRequest, update bool) (created, updated, skipped, failed int) {
	for _, p := range products {
		_, err := uc.Create(ctx, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate) && !update:
			skipped++
		case errors.Is(err, domain.ErrDuplicate):
			existing, gErr := uc.GetBySKU(ctx, p.SKU)
			if gErr == nil {
				_, gErr = uc.Update(ctx, dto.UpdateProductRequest{ID: existing.ID, CreateProductRequest: p})
			}
			if gErr != nil {
				fmt.Fprintf(os.Stderr, "SKU %s: %v\n", p.SKU, gErr)
				failed++
				continue
			}
			updated++
		default:
			fmt.Fprintf(os.Stderr, "SKU %s: %v\n", p.SKU, err)
			failed++
		}
	}
	return created, updated, skipped, failed
}
