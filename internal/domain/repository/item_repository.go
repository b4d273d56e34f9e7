package repository

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// ItemRepository puerto de consulta al catálogo. Devuelve nil, nil si el ítem no existe en el tenant.
type ItemRepository interface {
	FindItem(ctx context.Context, tenantID, id string) (*entity.Item, error)
}
