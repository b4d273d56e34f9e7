package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Balances     repository.BalanceRepository
	Movements    repository.MovementRepository
	Transactions repository.StockTransactionRepository
	Sequences    repository.MovementSequenceRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario: si fn devuelve error se hace rollback de todo.
// Los fallos de bloqueo (timeout, deadlock) se devuelven envueltos en domain.ErrLockTimeout.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context, repos TxRepos) error) error
}

// Clock fuente de tiempo inyectable (fecha del movimiento y día de la numeración).
type Clock interface {
	Now() time.Time
}

// SystemClock usa el reloj del sistema.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapta una función a Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// AuditMeta datos que recibe el auditor externo al crear un movimiento.
type AuditMeta struct {
	MovementNumber string
	Type           entity.MovementType
	MovedAt        time.Time
}

// AuditLogger colaborador externo de auditoría. Se invoca después del commit y su resultado
// no afecta al movimiento (fire-and-forget).
type AuditLogger interface {
	Created(ctx context.Context, movement *entity.Movement, meta AuditMeta)
}
