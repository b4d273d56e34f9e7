package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/inventory"
	"github.com/jhoicas/procura-api/internal/domain/repository"
	"github.com/jhoicas/procura-api/pkg/logger"
)

// RecordMovementUseCase contabiliza movimientos de inventario (receipt, issue, transfer, adjust)
// de forma transaccional: todas las líneas, saldos y entradas del log se aplican o ninguna.
type RecordMovementUseCase struct {
	txRunner TxRunner
	items    repository.ItemRepository
	resolver *LocationResolver
	ledger   *BalanceLedger
	numberer *MovementNumberer
	audit    AuditLogger
	clock    Clock
	log      *logger.Logger
}

// NewRecordMovementUseCase construye el caso de uso. audit puede ser nil.
func NewRecordMovementUseCase(
	txRunner TxRunner,
	items repository.ItemRepository,
	resolver *LocationResolver,
	ledger *BalanceLedger,
	numberer *MovementNumberer,
	audit AuditLogger,
	clock Clock,
	log *logger.Logger,
) *RecordMovementUseCase {
	if clock == nil {
		clock = SystemClock{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &RecordMovementUseCase{
		txRunner: txRunner,
		items:    items,
		resolver: resolver,
		ledger:   ledger,
		numberer: numberer,
		audit:    audit,
		clock:    clock,
		log:      log,
	}
}

// MovementInput entrada para contabilizar un movimiento.
// TenantID y UserID vienen del contexto de identidad, no del cuerpo del request.
type MovementInput struct {
	TenantID  string
	UserID    string
	Type      string
	MovedAt   *time.Time
	Reference *ReferenceInput
	Notes     string
	Lines     []LineInput
}

// ReferenceInput documento externo que origina el movimiento.
type ReferenceInput struct {
	Source string
	ID     string
}

// LineInput línea del movimiento. Quantity > 0; la dirección la dan el tipo y las ubicaciones.
type LineInput struct {
	ItemID         string
	Quantity       decimal.Decimal
	UOM            string
	FromLocationID *string
	ToLocationID   *string
	Reason         string
}

type preparedLine struct {
	lineNo   int
	itemID   string
	quantity decimal.Decimal
	uom      string
	reason   string
	effect   inventory.LineEffect
}

// RecordMovement valida el request, resuelve ítems y ubicaciones, y dentro de una sola transacción:
// aplica los efectos de cada línea en orden (bloqueando cada saldo), agrega el log de transacciones,
// asigna el número MV-YYYYMMDD-NNNN y persiste cabecera y líneas. Cualquier error hace rollback total.
func (uc *RecordMovementUseCase) RecordMovement(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	mov, err := uc.record(ctx, in)
	if err != nil {
		ev := uc.log.Error()
		if domain.IsRejection(err) {
			ev = uc.log.Warn()
		}
		ev.Err(err).
			Str("tenant_id", in.TenantID).
			Str("type", in.Type).
			Int("lines", len(in.Lines)).
			Msg("movimiento rechazado")
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", mov.TenantID).
		Str("movement_id", mov.ID).
		Str("number", mov.Number).
		Str("type", string(mov.Type)).
		Int("lines", len(mov.Lines)).
		Msg("movimiento contabilizado")

	if uc.audit != nil {
		uc.audit.Created(ctx, mov, AuditMeta{MovementNumber: mov.Number, Type: mov.Type, MovedAt: mov.MovedAt})
	}
	return mov, nil
}

func (uc *RecordMovementUseCase) record(ctx context.Context, in MovementInput) (*entity.Movement, error) {
	if in.TenantID == "" || in.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	mt, err := inventory.ParseMovementType(strings.TrimSpace(in.Type))
	if err != nil {
		return nil, domain.LineErr(0, "type", err)
	}
	if len(in.Lines) == 0 {
		return nil, domain.LineErr(0, "lines", domain.ErrEmptyMovement)
	}

	prepared, err := uc.prepare(ctx, in.TenantID, mt, in.Lines)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	mov := &entity.Movement{
		ID:        uuid.New().String(),
		TenantID:  in.TenantID,
		Type:      mt,
		Status:    entity.MovementStatusPosted,
		MovedAt:   now.UTC(),
		Notes:     strings.TrimSpace(in.Notes),
		CreatedBy: in.UserID,
		CreatedAt: now.UTC(),
	}
	if in.MovedAt != nil && !in.MovedAt.IsZero() {
		mov.MovedAt = in.MovedAt.UTC()
	}
	if in.Reference != nil && strings.TrimSpace(in.Reference.ID) != "" {
		mov.Reference = &entity.Reference{
			Source: normalizeSource(in.Reference.Source),
			ID:     strings.TrimSpace(in.Reference.ID),
		}
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace)
	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos TxRepos) error {
		lines := make([]entity.MovementLine, 0, len(prepared))
		var entries []entity.StockTransaction

		for _, p := range prepared {
			resulting := decimal.Zero
			for _, side := range p.effect.Sides() {
				delta := p.quantity
				if side.Outbound {
					delta = delta.Neg()
				}
				key := entity.KeyFor(mov.TenantID, p.itemID, side.Location)
				onHand, err := uc.ledger.ApplyDelta(ctx, repos.Balances, key, p.uom, delta)
				if err != nil {
					if errors.Is(err, domain.ErrInsufficientStock) {
						return domain.LineErr(p.lineNo, side.Field, err)
					}
					if errors.Is(err, domain.ErrInvalidQuantity) {
						return domain.LineErr(p.lineNo, "qty", err)
					}
					return fmt.Errorf("línea %d: %w", p.lineNo, err)
				}
				resulting = onHand
				entries = append(entries, uc.logEntry(mov, p, side))
			}
			lines = append(lines, entity.MovementLine{
				MovementID:      mov.ID,
				TenantID:        mov.TenantID,
				LineNo:          p.lineNo,
				ItemID:          p.itemID,
				Quantity:        p.quantity,
				UOM:             p.uom,
				Reason:          p.reason,
				From:            p.effect.From(),
				To:              p.effect.To(),
				ResultingOnHand: resulting,
			})
		}

		// El contador se toma al final para mantener su bloqueo el menor tiempo posible.
		number, err := uc.numberer.NextMovementNumber(ctx, repos.Sequences, mov.TenantID, now)
		if err != nil {
			return err
		}
		mov.Number = number

		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		if err := repos.Movements.CreateLines(ctx, lines); err != nil {
			return err
		}
		if err := repos.Transactions.Append(ctx, entries); err != nil {
			return err
		}
		mov.Lines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// prepare valida cada línea y resuelve ítem y ubicaciones antes de abrir la transacción.
// Los catálogos son de solo lectura, así que no necesitan los bloqueos de la unidad de trabajo.
func (uc *RecordMovementUseCase) prepare(ctx context.Context, tenantID string, mt entity.MovementType, in []LineInput) ([]preparedLine, error) {
	items := make(map[string]*entity.Item)
	out := make([]preparedLine, 0, len(in))

	for i, l := range in {
		lineNo := i + 1
		if !inventory.ValidQuantity(l.Quantity) {
			return nil, domain.LineErr(lineNo, "qty", domain.ErrInvalidQuantity)
		}

		itemID := strings.TrimSpace(l.ItemID)
		item, ok := items[itemID]
		if !ok {
			if itemID != "" {
				found, err := uc.items.FindItem(ctx, tenantID, itemID)
				if err != nil {
					return nil, fmt.Errorf("find item: %w", err)
				}
				item = found
			}
			items[itemID] = item
		}
		if item == nil {
			return nil, domain.LineErr(lineNo, "itemId", domain.ErrUnknownItem)
		}

		var from, to *entity.Location
		var err error
		if inventory.UsesFrom(mt) {
			if from, err = uc.resolveSide(ctx, tenantID, lineNo, inventory.FieldFrom, l.FromLocationID); err != nil {
				return nil, err
			}
		}
		if inventory.UsesTo(mt) {
			if to, err = uc.resolveSide(ctx, tenantID, lineNo, inventory.FieldTo, l.ToLocationID); err != nil {
				return nil, err
			}
		}
		effect, err := inventory.NewLineEffect(lineNo, mt, from, to)
		if err != nil {
			return nil, err
		}

		out = append(out, preparedLine{
			lineNo:   lineNo,
			itemID:   item.ID,
			quantity: l.Quantity,
			uom:      normalizeUOM(l.UOM, item.DefaultUOM),
			reason:   strings.TrimSpace(l.Reason),
			effect:   effect,
		})
	}
	return out, nil
}

func (uc *RecordMovementUseCase) resolveSide(ctx context.Context, tenantID string, lineNo int, field string, id *string) (*entity.Location, error) {
	loc, err := uc.resolver.Resolve(ctx, tenantID, trimmedPtr(id))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidLocation) {
			return nil, domain.LineErr(lineNo, field, err)
		}
		return nil, err
	}
	return loc, nil
}

func (uc *RecordMovementUseCase) logEntry(mov *entity.Movement, p preparedLine, side inventory.Side) entity.StockTransaction {
	note := p.reason
	if note == "" {
		note = mov.Notes
	}
	return entity.StockTransaction{
		ID:          uuid.New().String(),
		TenantID:    mov.TenantID,
		MovementID:  mov.ID,
		ItemID:      p.itemID,
		SiteID:      side.Location.SiteID,
		BinID:       side.Location.BinID,
		Effect:      side.Effect,
		Quantity:    p.quantity,
		UOM:         p.uom,
		Reference:   mov.Reference,
		Note:        note,
		PerformedBy: mov.CreatedBy,
		CreatedAt:   mov.CreatedAt,
	}
}
