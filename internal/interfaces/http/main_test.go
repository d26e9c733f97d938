package http_test

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
)

// Igual que cmd/api: montos como número JSON.
func TestMain(m *testing.M) {
	decimal.MarshalJSONWithoutQuotes = true
	os.Exit(m.Run())
}
