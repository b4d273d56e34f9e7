package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL (usable con pool o tx).
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

const selectBalance = `
	SELECT tenant_id, item_id, site_id, bin_id, on_hand, allocated, on_order, uom, updated_at
	FROM inventory_balances
	WHERE tenant_id = $1 AND item_id = $2 AND site_id = $3 AND bin_id = $4`

// GetForUpdate crea la fila en cero si no existe y la bloquea hasta el fin de la tx (SELECT FOR UPDATE).
// El INSERT ... ON CONFLICT DO NOTHING evita la carrera de dos transacciones creando el mismo saldo.
func (r *BalanceRepo) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_balances (tenant_id, item_id, site_id, bin_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT DO NOTHING`,
		key.TenantID, key.ItemID, key.SiteID, binKey(key.BinID),
	)
	if err != nil {
		return nil, fmt.Errorf("ensure balance: %w", err)
	}
	b, err := r.scan(r.q.QueryRow(ctx, selectBalance+" FOR UPDATE",
		key.TenantID, key.ItemID, key.SiteID, binKey(key.BinID)))
	if err != nil {
		return nil, fmt.Errorf("get balance for update: %w", err)
	}
	return b, nil
}

// Save persiste on_hand, unidad y fecha. allocated y on_order no los toca este núcleo.
func (r *BalanceRepo) Save(ctx context.Context, b *entity.Balance) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_balances
		SET on_hand = $5, uom = $6, updated_at = $7
		WHERE tenant_id = $1 AND item_id = $2 AND site_id = $3 AND bin_id = $4`,
		b.TenantID, b.ItemID, b.SiteID, binKey(b.BinID), b.OnHand, b.UOM, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("save balance %s: fila inexistente", b.BalanceKey)
	}
	return nil
}

// Get lee el saldo sin bloquear. nil, nil si nunca se creó.
func (r *BalanceRepo) Get(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	b, err := r.scan(r.q.QueryRow(ctx, selectBalance,
		key.TenantID, key.ItemID, key.SiteID, binKey(key.BinID)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return b, nil
}

func (r *BalanceRepo) scan(row pgx.Row) (*entity.Balance, error) {
	var b entity.Balance
	var bin string
	if err := row.Scan(&b.TenantID, &b.ItemID, &b.SiteID, &bin,
		&b.OnHand, &b.Allocated, &b.OnOrder, &b.UOM, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.BinID = binFromKey(bin)
	return &b, nil
}
