package brl_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pdv-api/pkg/brl"
)

func TestMoney(t *testing.T) {
	got := brl.Money(decimal.RequireFromString("1234.5"))
	assert.Equal(t, "R$ 1.234,50", got)
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, "07/03/2026", brl.Date(d))
	assert.Equal(t, "07/03/2026 10:00", brl.DateTime(d))
}
