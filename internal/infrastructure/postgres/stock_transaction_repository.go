package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo log append-only de efectos por ubicación (usable con pool o tx).
type StockTransactionRepo struct {
	q Querier
}

func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

var stockTransactionColumns = []string{
	"id", "tenant_id", "movement_id", "item_id", "site_id", "bin_id", "effect",
	"quantity", "uom", "ref_source", "ref_id", "note", "performed_by", "created_at",
}

// Append usa COPY: el orden de las filas define seq y por tanto el orden de lectura.
func (r *StockTransactionRepo) Append(ctx context.Context, entries []entity.StockTransaction) error {
	if len(entries) == 0 {
		return nil
	}
	n, err := r.q.CopyFrom(ctx, pgx.Identifier{"stock_transactions"}, stockTransactionColumns,
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			id, err := uuid.Parse(e.ID)
			if err != nil {
				return nil, fmt.Errorf("stock transaction id %q: %w", e.ID, err)
			}
			movementID, err := uuid.Parse(e.MovementID)
			if err != nil {
				return nil, fmt.Errorf("movement id %q: %w", e.MovementID, err)
			}
			var refSource, refID *string
			if e.Reference != nil {
				refSource, refID = nullableString(e.Reference.Source), nullableString(e.Reference.ID)
			}
			return []any{
				id, e.TenantID, movementID, e.ItemID, e.SiteID, e.BinID, string(e.Effect),
				e.Quantity, e.UOM, refSource, refID, e.Note, e.PerformedBy, e.CreatedAt,
			}, nil
		}),
	)
	if err != nil {
		return fmt.Errorf("append stock transactions: %w", err)
	}
	if int(n) != len(entries) {
		return fmt.Errorf("append stock transactions: %d de %d filas", n, len(entries))
	}
	return nil
}

// ListByMovement entradas de un movimiento en orden de inserción.
func (r *StockTransactionRepo) ListByMovement(ctx context.Context, tenantID, movementID string) ([]entity.StockTransaction, error) {
	mid, err := uuid.Parse(movementID)
	if err != nil {
		return []entity.StockTransaction{}, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id::text, tenant_id, movement_id::text, item_id, site_id, bin_id, effect,
			quantity, uom, ref_source, ref_id, note, performed_by, created_at
		FROM stock_transactions
		WHERE tenant_id = $1 AND movement_id = $2
		ORDER BY seq`, tenantID, mid)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	list := make([]entity.StockTransaction, 0)
	for rows.Next() {
		var e entity.StockTransaction
		var refSource, refID *string
		if err := rows.Scan(&e.ID, &e.TenantID, &e.MovementID, &e.ItemID, &e.SiteID, &e.BinID, &e.Effect,
			&e.Quantity, &e.UOM, &refSource, &refID, &e.Note, &e.PerformedBy, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		if refID != nil {
			e.Reference = &entity.Reference{Source: stringOrEmpty(refSource), ID: *refID}
		}
		list = append(list, e)
	}
	return list, rows.Err()
}
