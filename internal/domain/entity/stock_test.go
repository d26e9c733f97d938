package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-api/internal/domain/entity"
)

func TestStock_RemoveFloorNuncaNegativo(t *testing.T) {
	s := entity.TrackedStock(3).RemoveFloor(10)
	n, tracked := s.Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 0, n, "remover más de lo disponible deja el estoque en exactamente 0")

	s = entity.UntrackedStock().RemoveFloor(2)
	n, tracked = s.Quantity()
	assert.True(t, tracked, "un ajuste absoluto empieza a controlar el estoque")
	assert.Equal(t, 0, n)
}

func TestStock_Add(t *testing.T) {
	n, _ := entity.TrackedStock(4).Add(6).Quantity()
	assert.Equal(t, 10, n)

	n, tracked := entity.UntrackedStock().Add(5).Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 5, n)
}

func TestStock_Decrement(t *testing.T) {
	next, ok := entity.TrackedStock(10).Decrement(2)
	require.True(t, ok)
	n, _ := next.Quantity()
	assert.Equal(t, 8, n)

	same, ok := entity.TrackedStock(2).Decrement(5)
	assert.False(t, ok, "no alcanza: la operación se rechaza")
	n, _ = same.Quantity()
	assert.Equal(t, 2, n)

	untracked, ok := entity.UntrackedStock().Decrement(100)
	assert.True(t, ok)
	assert.False(t, untracked.IsTracked(), "un producto sin control sigue sin control")
}

func TestStock_AtOrBelow(t *testing.T) {
	assert.True(t, entity.TrackedStock(5).AtOrBelow(5))
	assert.False(t, entity.TrackedStock(6).AtOrBelow(5))
	assert.False(t, entity.UntrackedStock().AtOrBelow(5))
}

func TestStock_JSON(t *testing.T) {
	var payload struct {
		Estoque entity.Stock `json:"estoque"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"estoque":null}`), &payload))
	assert.False(t, payload.Estoque.IsTracked())

	require.NoError(t, json.Unmarshal([]byte(`{"estoque":7}`), &payload))
	n, tracked := payload.Estoque.Quantity()
	assert.True(t, tracked)
	assert.Equal(t, 7, n)

	assert.Error(t, json.Unmarshal([]byte(`{"estoque":-1}`), &payload))

	out, err := json.Marshal(entity.UntrackedStock())
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}
