package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// LocationResolver traduce un id opaco de ubicación al par (sede, bin).
type LocationResolver struct {
	bins  repository.BinRepository
	sites repository.SiteRepository
}

// NewLocationResolver construye el resolvedor sobre los directorios de bins y sedes.
func NewLocationResolver(bins repository.BinRepository, sites repository.SiteRepository) *LocationResolver {
	return &LocationResolver{bins: bins, sites: sites}
}

// Resolve busca primero un bin y luego una sede con ese id.
// id nil o vacío significa "no indicado" y devuelve nil, nil; un id que no existe es ErrInvalidLocation.
func (r *LocationResolver) Resolve(ctx context.Context, tenantID string, id *string) (*entity.Location, error) {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil, nil
	}
	locID := strings.TrimSpace(*id)

	bin, err := r.bins.FindBin(ctx, tenantID, locID)
	if err != nil {
		return nil, fmt.Errorf("find bin: %w", err)
	}
	if bin != nil {
		binID := bin.ID
		return &entity.Location{SiteID: bin.SiteID, BinID: &binID}, nil
	}

	site, err := r.sites.FindSite(ctx, tenantID, locID)
	if err != nil {
		return nil, fmt.Errorf("find site: %w", err)
	}
	if site != nil {
		return &entity.Location{SiteID: site.ID}, nil
	}
	return nil, domain.ErrInvalidLocation
}
