package repository

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// StockTransactionRepository es el log append-only de efectos por ubicación.
type StockTransactionRepository interface {
	Append(ctx context.Context, entries []entity.StockTransaction) error
	// ListByMovement devuelve las entradas de un movimiento en orden de inserción.
	ListByMovement(ctx context.Context, tenantID, movementID string) ([]entity.StockTransaction, error)
}
