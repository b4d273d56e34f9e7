package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/procura-api/internal/domain/inventory"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// MovementNumberer emite números MV-YYYYMMDD-NNNN por tenant y día.
type MovementNumberer struct {
	loc *time.Location
}

// NewMovementNumberer loc define a qué zona pertenece el "día" (nil = UTC).
func NewMovementNumberer(loc *time.Location) *MovementNumberer {
	if loc == nil {
		loc = time.UTC
	}
	return &MovementNumberer{loc: loc}
}

// NextMovementNumber incrementa el contador (tenant, día de at) dentro de la transacción del
// movimiento y formatea el número. Dos contabilizaciones del mismo tenant y día se serializan
// en el contador; un rollback no deja huecos.
func (n *MovementNumberer) NextMovementNumber(
	ctx context.Context,
	sequences repository.MovementSequenceRepository,
	tenantID string,
	at time.Time,
) (string, error) {
	day := inventory.DayKey(at, n.loc)
	seq, err := sequences.Next(ctx, tenantID, day)
	if err != nil {
		return "", fmt.Errorf("next movement sequence: %w", err)
	}
	return inventory.FormatMovementNumber(day, seq), nil
}
