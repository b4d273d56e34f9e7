package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

// QueryUseCase lecturas sobre el estado confirmado: movimientos, log de transacciones y saldos.
// Usa repositorios atados al pool (fuera de transacción, sin bloqueos).
type QueryUseCase struct {
	movements    repository.MovementRepository
	transactions repository.StockTransactionRepository
	balances     repository.BalanceRepository
	items        repository.ItemRepository
	resolver     *LocationResolver
}

func NewQueryUseCase(
	movements repository.MovementRepository,
	transactions repository.StockTransactionRepository,
	balances repository.BalanceRepository,
	items repository.ItemRepository,
	resolver *LocationResolver,
) *QueryUseCase {
	return &QueryUseCase{
		movements:    movements,
		transactions: transactions,
		balances:     balances,
		items:        items,
		resolver:     resolver,
	}
}

// GetMovement devuelve un movimiento con sus líneas. ErrNotFound si no existe en el tenant.
func (uc *QueryUseCase) GetMovement(ctx context.Context, tenantID, id string) (*entity.Movement, error) {
	mov, err := uc.movements.GetByID(ctx, tenantID, strings.TrimSpace(id))
	if err != nil {
		return nil, fmt.Errorf("get movement: %w", err)
	}
	if mov == nil {
		return nil, domain.ErrNotFound
	}
	return mov, nil
}

// ListMovementTransactions entradas del log de un movimiento, en orden de aplicación.
func (uc *QueryUseCase) ListMovementTransactions(ctx context.Context, tenantID, movementID string) ([]entity.StockTransaction, error) {
	if _, err := uc.GetMovement(ctx, tenantID, movementID); err != nil {
		return nil, err
	}
	list, err := uc.transactions.ListByMovement(ctx, tenantID, strings.TrimSpace(movementID))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return list, nil
}

// GetBalance saldo de un ítem en una ubicación (sede o bin).
// Un saldo que nunca se movió se devuelve en cero con la unidad por defecto del ítem.
func (uc *QueryUseCase) GetBalance(ctx context.Context, tenantID, itemID, locationID string) (*entity.Balance, error) {
	item, err := uc.items.FindItem(ctx, tenantID, strings.TrimSpace(itemID))
	if err != nil {
		return nil, fmt.Errorf("find item: %w", err)
	}
	if item == nil {
		return nil, domain.LineErr(0, "itemId", domain.ErrUnknownItem)
	}

	loc, err := uc.resolver.Resolve(ctx, tenantID, &locationID)
	if err != nil {
		return nil, domain.LineErr(0, "locationId", err)
	}
	if loc == nil {
		return nil, domain.LineErr(0, "locationId", domain.ErrLocationRequired)
	}

	key := entity.KeyFor(tenantID, item.ID, *loc)
	bal, err := uc.balances.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("get balance: %w", err)
	}
	if bal == nil {
		bal = entity.NewBalance(key)
		bal.UOM = normalizeUOM("", item.DefaultUOM)
	}
	return bal, nil
}
