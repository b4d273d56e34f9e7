package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var (
	_ repository.ItemRepository = (*CatalogRepo)(nil)
	_ repository.SiteRepository = (*CatalogRepo)(nil)
	_ repository.BinRepository  = (*CatalogRepo)(nil)
)

// CatalogRepo lecturas de ítems, sedes y bins. Solo lectura, se usa con el pool.
type CatalogRepo struct {
	q Querier
}

func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// FindItem obtiene un ítem del tenant. nil, nil si no existe.
func (r *CatalogRepo) FindItem(ctx context.Context, tenantID, id string) (*entity.Item, error) {
	var it entity.Item
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, sku, name, default_uom
		FROM items WHERE tenant_id = $1 AND id = $2`, tenantID, id,
	).Scan(&it.ID, &it.TenantID, &it.SKU, &it.Name, &it.DefaultUOM)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find item: %w", err)
	}
	return &it, nil
}

func (r *CatalogRepo) FindSite(ctx context.Context, tenantID, id string) (*entity.Site, error) {
	var s entity.Site
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, name FROM sites WHERE tenant_id = $1 AND id = $2`, tenantID, id,
	).Scan(&s.ID, &s.TenantID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find site: %w", err)
	}
	return &s, nil
}

func (r *CatalogRepo) FindBin(ctx context.Context, tenantID, id string) (*entity.Bin, error) {
	var b entity.Bin
	err := r.q.QueryRow(ctx, `
		SELECT id, tenant_id, site_id, code FROM bins WHERE tenant_id = $1 AND id = $2`, tenantID, id,
	).Scan(&b.ID, &b.TenantID, &b.SiteID, &b.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find bin: %w", err)
	}
	return &b, nil
}
