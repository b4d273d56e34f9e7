package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/procura-api/internal/domain"
)

// DefaultNegativeTolerance absorbe redondeos de cantidades decimales (ε = 0.0005).
var DefaultNegativeTolerance = decimal.RequireFromString("0.0005")

// Límites de las columnas NUMERIC(20,6) de cantidades y saldos.
const QuantityScale = 6

// MaxQuantity cota exclusiva del valor absoluto de cantidades y saldos (14 dígitos enteros).
var MaxQuantity = decimal.New(1, 14)

// ValidQuantity indica si q es positiva y cabe sin redondeo en NUMERIC(20,6).
// Los ceros a la derecha no cuentan como escala (1.500000000 es válido).
func ValidQuantity(q decimal.Decimal) bool {
	return q.IsPositive() && q.LessThan(MaxQuantity) && q.Equal(q.Truncate(QuantityScale))
}

// NextOnHand calcula el nuevo saldo disponible aplicando delta (con signo).
// Rechaza con ErrInsufficientStock si el resultado queda por debajo de -tolerance
// y con ErrInvalidQuantity si el saldo ya no cabe en MaxQuantity.
//
// NuevoSaldo = SaldoActual + Delta
func NextOnHand(current, delta, tolerance decimal.Decimal) (decimal.Decimal, error) {
	next := current.Add(delta)
	if next.LessThan(tolerance.Neg()) {
		return current, domain.ErrInsufficientStock
	}
	if next.Abs().GreaterThanOrEqual(MaxQuantity) {
		return current, domain.ErrInvalidQuantity
	}
	return next, nil
}
