package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestNextOnHand_SumaYResta(t *testing.T) {
	next, err := inventory.NextOnHand(dec("10"), dec("-4"), inventory.DefaultNegativeTolerance)
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("6")), "10 - 4 debe dar 6, obtuvo %s", next)

	next, err = inventory.NextOnHand(decimal.Zero, dec("10"), inventory.DefaultNegativeTolerance)
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("10")))
}

// Escenario B: salida de 5 contra saldo de 3 → rechazo, saldo intacto.
func TestNextOnHand_StockInsuficiente(t *testing.T) {
	next, err := inventory.NextOnHand(dec("3"), dec("-5"), inventory.DefaultNegativeTolerance)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, next.Equal(dec("3")), "en rechazo se devuelve el saldo actual")
}

// La tolerancia absorbe redondeos: -0.0004 se acepta, -0.0006 no.
func TestNextOnHand_Tolerancia(t *testing.T) {
	next, err := inventory.NextOnHand(dec("1.2496"), dec("-1.25"), inventory.DefaultNegativeTolerance)
	require.NoError(t, err)
	assert.True(t, next.Equal(dec("-0.0004")))

	_, err = inventory.NextOnHand(dec("1.2494"), dec("-1.25"), inventory.DefaultNegativeTolerance)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestNextOnHand_ExactoACero(t *testing.T) {
	next, err := inventory.NextOnHand(dec("2.5"), dec("-2.5"), inventory.DefaultNegativeTolerance)
	require.NoError(t, err)
	assert.True(t, next.IsZero())
}

func TestValidQuantity(t *testing.T) {
	tests := []struct {
		qty  string
		want bool
	}{
		{"1", true},
		{"0.000001", true},
		{"1.500000000", true},
		{"99999999999999.999999", true},
		{"0", false},
		{"-1", false},
		{"0.0000001", false},
		{"1.0000004", false},
		{"100000000000000", false},
		{"123456789012345.5", false},
	}
	for _, tt := range tests {
		t.Run(tt.qty, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.ValidQuantity(dec(tt.qty)))
		})
	}
}

func TestNextOnHand_SaldoFueraDeRango(t *testing.T) {
	next, err := inventory.NextOnHand(dec("99999999999999"), dec("1"), inventory.DefaultNegativeTolerance)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, next.Equal(dec("99999999999999")))
}
