package repository

import (
	"context"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// SiteRepository puerto del directorio de sedes. nil, nil si no existe en el tenant.
type SiteRepository interface {
	FindSite(ctx context.Context, tenantID, id string) (*entity.Site, error)
}

// BinRepository puerto del directorio de bins. nil, nil si no existe en el tenant.
type BinRepository interface {
	FindBin(ctx context.Context, tenantID, id string) (*entity.Bin, error)
}
