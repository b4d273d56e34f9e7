package memory

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// Run ejecuta fn con repositorios que escriben en staging. Si fn termina sin error el staging
// se publica de una sola vez; si no, se descarta. Los locks se liberan en ambos casos.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos inventory.TxRepos) error) error {
	t := &tx{
		s:         s,
		held:      make(map[string]*semaphore.Weighted),
		balances:  make(map[string]entity.Balance),
		movements: make(map[string]*entity.Movement),
		sequences: make(map[string]int),
	}
	defer t.release()

	repos := inventory.TxRepos{Balances: t, Movements: t, Transactions: t, Sequences: t}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	return t.commit()
}

// acquire toma el lock de la fila key. Si ya lo tiene esta tx no vuelve a esperar.
// La espera termina por lockTimeout (ErrLockTimeout) o por ctx (ctx.Err()).
func (s *Store) acquire(ctx context.Context, t *tx, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	s.mu.Lock()
	sem, ok := s.locks[key]
	if !ok {
		sem = semaphore.NewWeighted(1)
		s.locks[key] = sem
	}
	s.mu.Unlock()

	wait := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		wait, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}
	if err := sem.Acquire(wait, 1); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("lock %s: %w", key, domain.ErrLockTimeout)
	}
	t.held[key] = sem
	return nil
}

// tx unidad de trabajo en memoria. Implementa los cuatro repositorios transaccionales.
type tx struct {
	s    *Store
	held map[string]*semaphore.Weighted

	balances  map[string]entity.Balance
	movements map[string]*entity.Movement
	order     []string
	entries   []entity.StockTransaction
	sequences map[string]int
}

func (t *tx) release() {
	for _, sem := range t.held {
		sem.Release(1)
	}
	t.held = nil
}

func (t *tx) commit() error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for _, k := range t.order {
		if err := t.s.checkMovement(t.movements[k]); err != nil {
			return err
		}
	}
	for _, k := range t.order {
		if err := t.s.putMovement(t.movements[k]); err != nil {
			return err
		}
		if err := t.s.putLines(t.movements[k].Lines); err != nil {
			return err
		}
	}
	for k, b := range t.balances {
		t.s.balances[k] = b
	}
	for k, v := range t.sequences {
		t.s.sequences[k] = v
	}
	t.s.entries = append(t.s.entries, t.entries...)
	return nil
}

func (t *tx) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	k := key.String()
	if err := t.s.acquire(ctx, t, "balance|"+k); err != nil {
		return nil, err
	}
	if b, ok := t.balances[k]; ok {
		return &b, nil
	}
	t.s.mu.Lock()
	b, ok := t.s.balances[k]
	t.s.mu.Unlock()
	if !ok {
		return entity.NewBalance(key), nil
	}
	return &b, nil
}

func (t *tx) Save(_ context.Context, bal *entity.Balance) error {
	k := bal.BalanceKey.String()
	if _, ok := t.held["balance|"+k]; !ok {
		return fmt.Errorf("save balance %s: fila no bloqueada en esta transacción", k)
	}
	t.balances[k] = *bal
	return nil
}

func (t *tx) Get(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	if b, ok := t.balances[key.String()]; ok {
		return &b, nil
	}
	return t.s.Get(ctx, key)
}

func (t *tx) Create(_ context.Context, mov *entity.Movement) error {
	k := tenantKey(mov.TenantID, mov.ID)
	if _, ok := t.movements[k]; ok {
		return fmt.Errorf("movement %s: %w", mov.ID, domain.ErrDuplicate)
	}
	c := cloneMovement(mov)
	c.Lines = nil
	t.movements[k] = c
	t.order = append(t.order, k)
	return nil
}

func (t *tx) CreateLines(_ context.Context, lines []entity.MovementLine) error {
	for _, l := range lines {
		mov, ok := t.movements[tenantKey(l.TenantID, l.MovementID)]
		if !ok {
			return fmt.Errorf("movement line %d: movement %s: %w", l.LineNo, l.MovementID, domain.ErrNotFound)
		}
		mov.Lines = append(mov.Lines, l)
	}
	return nil
}

func (t *tx) GetByID(ctx context.Context, tenantID, id string) (*entity.Movement, error) {
	if mov, ok := t.movements[tenantKey(tenantID, id)]; ok {
		return cloneMovement(mov), nil
	}
	return t.s.GetByID(ctx, tenantID, id)
}

func (t *tx) Append(_ context.Context, entries []entity.StockTransaction) error {
	t.entries = append(t.entries, entries...)
	return nil
}

func (t *tx) ListByMovement(ctx context.Context, tenantID, movementID string) ([]entity.StockTransaction, error) {
	out, err := t.s.ListByMovement(ctx, tenantID, movementID)
	if err != nil {
		return nil, err
	}
	for _, e := range t.entries {
		if e.TenantID == tenantID && e.MovementID == movementID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Next bloquea el contador (tenant, día) hasta el fin de la tx, como la fila de movement_sequences.
func (t *tx) Next(ctx context.Context, tenantID, day string) (int, error) {
	k := tenantKey(tenantID, day)
	if err := t.s.acquire(ctx, t, "sequence|"+k); err != nil {
		return 0, err
	}
	v, ok := t.sequences[k]
	if !ok {
		t.s.mu.Lock()
		v = t.s.sequences[k]
		t.s.mu.Unlock()
	}
	v++
	t.sequences[k] = v
	return v, nil
}
