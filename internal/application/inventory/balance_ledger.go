package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/inventory"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// BalanceLedger único componente que modifica saldos. Siempre opera con el repositorio
// de la transacción en curso, de modo que el bloqueo de fila dura hasta el commit.
type BalanceLedger struct {
	tolerance decimal.Decimal
	clock     Clock
}

// NewBalanceLedger construye el ledger con la tolerancia de saldo negativo (ε).
func NewBalanceLedger(tolerance decimal.Decimal, clock Clock) *BalanceLedger {
	if clock == nil {
		clock = SystemClock{}
	}
	return &BalanceLedger{tolerance: tolerance, clock: clock}
}

// ApplyDelta bloquea (o crea en cero) el saldo de key, aplica delta y guarda.
// Si el saldo quedaría por debajo de -ε devuelve ErrInsufficientStock sin tocar la fila.
// La unidad de medida queda con la del movimiento (último en escribir gana, sin conversión).
func (l *BalanceLedger) ApplyDelta(
	ctx context.Context,
	balances repository.BalanceRepository,
	key entity.BalanceKey,
	uom string,
	delta decimal.Decimal,
) (decimal.Decimal, error) {
	bal, err := balances.GetForUpdate(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	next, err := inventory.NextOnHand(bal.OnHand, delta, l.tolerance)
	if err != nil {
		return bal.OnHand, err
	}
	bal.OnHand = next
	bal.UOM = uom
	bal.UpdatedAt = l.clock.Now().UTC().Truncate(time.Microsecond)
	if err := balances.Save(ctx, bal); err != nil {
		return decimal.Zero, err
	}
	return next, nil
}
