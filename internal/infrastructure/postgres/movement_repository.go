package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste la cabecera. Un número repetido en el tenant es ErrDuplicate.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	var refSource, refID *string
	if m.Reference != nil {
		refSource, refID = nullableString(m.Reference.Source), nullableString(m.Reference.ID)
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO movements (id, tenant_id, number, type, status, moved_at, ref_source, ref_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		m.ID, m.TenantID, m.Number, m.Type, m.Status, m.MovedAt,
		refSource, refID, m.Notes, m.CreatedBy, m.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create movement %s: %w", m.Number, domain.ErrDuplicate)
		}
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// CreateLines inserta todas las líneas en un solo round-trip (pgx.Batch), en el orden recibido.
func (r *MovementRepo) CreateLines(ctx context.Context, lines []entity.MovementLine) error {
	if len(lines) == 0 {
		return nil
	}
	const query = `
		INSERT INTO movement_lines (movement_id, line_no, tenant_id, item_id, quantity, uom, reason,
			from_site_id, from_bin_id, to_site_id, to_bin_id, resulting_on_hand)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	batch := &pgx.Batch{}
	for _, l := range lines {
		fromSite, fromBin := locationColumns(l.From)
		toSite, toBin := locationColumns(l.To)
		batch.Queue(query,
			l.MovementID, l.LineNo, l.TenantID, l.ItemID, l.Quantity, l.UOM, l.Reason,
			fromSite, fromBin, toSite, toBin, l.ResultingOnHand,
		)
	}
	br := r.q.SendBatch(ctx, batch)
	defer br.Close()
	for _, l := range lines {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("create movement line %d: %w", l.LineNo, err)
		}
	}
	return br.Close()
}

// GetByID devuelve cabecera y líneas ordenadas por line_no, o nil, nil.
func (r *MovementRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Movement, error) {
	movementID, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	var m entity.Movement
	var refSource, refID *string
	err = r.q.QueryRow(ctx, `
		SELECT id::text, tenant_id, number, type, status, moved_at, ref_source, ref_id, notes, created_by, created_at
		FROM movements WHERE tenant_id = $1 AND id = $2`, tenantID, movementID,
	).Scan(&m.ID, &m.TenantID, &m.Number, &m.Type, &m.Status, &m.MovedAt,
		&refSource, &refID, &m.Notes, &m.CreatedBy, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if refID != nil {
		m.Reference = &entity.Reference{Source: stringOrEmpty(refSource), ID: *refID}
	}

	rows, err := r.q.Query(ctx, `
		SELECT movement_id::text, line_no, tenant_id, item_id, quantity, uom, reason,
			from_site_id, from_bin_id, to_site_id, to_bin_id, resulting_on_hand
		FROM movement_lines WHERE movement_id = $1 ORDER BY line_no`, movementID)
	if err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.MovementLine
		var fromSite, fromBin, toSite, toBin *string
		if err := rows.Scan(&l.MovementID, &l.LineNo, &l.TenantID, &l.ItemID, &l.Quantity, &l.UOM, &l.Reason,
			&fromSite, &fromBin, &toSite, &toBin, &l.ResultingOnHand); err != nil {
			return nil, fmt.Errorf("scan movement line: %w", err)
		}
		l.From = locationFromColumns(fromSite, fromBin)
		l.To = locationFromColumns(toSite, toBin)
		m.Lines = append(m.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list movement lines: %w", err)
	}
	return &m, nil
}

func locationColumns(loc *entity.Location) (site, bin *string) {
	if loc == nil {
		return nil, nil
	}
	s := loc.SiteID
	return &s, loc.BinID
}

func locationFromColumns(site, bin *string) *entity.Location {
	if site == nil {
		return nil
	}
	return &entity.Location{SiteID: *site, BinID: bin}
}
