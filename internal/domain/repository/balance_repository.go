package repository

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// BalanceRepository define el puerto para leer/actualizar saldos por (ítem, sede, bin).
// GetForUpdate y Save solo tienen sentido dentro de una transacción (TxRunner).
type BalanceRepository interface {
	// GetForUpdate bloquea la fila del saldo hasta el commit (SELECT FOR UPDATE).
	// Si no existe la crea en cero, de modo que siempre devuelve un saldo.
	GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error)
	Save(ctx context.Context, balance *entity.Balance) error
	// Get lee sin bloquear. Devuelve nil, nil si el saldo nunca se creó.
	Get(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error)
}
