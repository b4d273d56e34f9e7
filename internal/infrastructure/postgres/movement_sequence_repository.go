package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.MovementSequenceRepository = (*MovementSequenceRepo)(nil)

// MovementSequenceRepo contador (tenant, día) en movement_sequences.
type MovementSequenceRepo struct {
	q Querier
}

func NewMovementSequenceRepository(q Querier) *MovementSequenceRepo {
	return &MovementSequenceRepo{q: q}
}

// Next incrementa y devuelve el contador. El upsert deja la fila bloqueada hasta el commit,
// de modo que dos contabilizaciones del mismo día se serializan aquí y un rollback no consume número.
func (r *MovementSequenceRepo) Next(ctx context.Context, tenantID, day string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		INSERT INTO movement_sequences (tenant_id, day, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, day)
		DO UPDATE SET last_value = movement_sequences.last_value + 1
		RETURNING last_value`, tenantID, day,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next movement sequence: %w", err)
	}
	return n, nil
}
