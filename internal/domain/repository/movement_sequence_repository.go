package repository

import "context"

// MovementSequenceRepository contador atómico por (tenant, día) para la numeración de movimientos.
// Next debe ejecutarse dentro de la transacción del movimiento: el incremento queda bloqueado
// hasta el commit y desaparece con el rollback (sin huecos).
type MovementSequenceRepository interface {
	Next(ctx context.Context, tenantID, day string) (int, error)
}
