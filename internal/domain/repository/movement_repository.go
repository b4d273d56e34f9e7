package repository

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos y sus líneas.
type MovementRepository interface {
	// Create persiste la cabecera del movimiento.
	Create(ctx context.Context, movement *entity.Movement) error
	// CreateLines persiste las líneas en el orden recibido.
	CreateLines(ctx context.Context, lines []entity.MovementLine) error
	// GetByID devuelve el movimiento con sus líneas ordenadas por LineNo, o nil, nil.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Movement, error)
}
