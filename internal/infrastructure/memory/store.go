package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	invdomain "github.com/jhoicas/procura-api/internal/domain/inventory"
	"github.com/jhoicas/procura-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner                    = (*Store)(nil)
	_ repository.BalanceRepository          = (*Store)(nil)
	_ repository.MovementRepository         = (*Store)(nil)
	_ repository.StockTransactionRepository = (*Store)(nil)
	_ repository.MovementSequenceRepository = (*Store)(nil)
	_ repository.ItemRepository             = (*Store)(nil)
	_ repository.SiteRepository             = (*Store)(nil)
	_ repository.BinRepository              = (*Store)(nil)
)

// Store almacenamiento en memoria con la misma semántica transaccional que PostgreSQL:
// bloqueo por fila hasta el commit, escrituras en staging y rollback descartando el staging.
// Fuera de Run cada método se comporta como autocommit.
type Store struct {
	mu          sync.Mutex
	lockTimeout time.Duration

	items     map[string]entity.Item
	sites     map[string]entity.Site
	bins      map[string]entity.Bin
	balances  map[string]entity.Balance
	movements map[string]*entity.Movement
	entries   []entity.StockTransaction
	sequences map[string]int

	// locks un semáforo de peso 1 por fila; tener el peso es tener el lock.
	locks map[string]*semaphore.Weighted
}

// NewStore lockTimeout <= 0 espera hasta que se cancele el contexto.
func NewStore(lockTimeout time.Duration) *Store {
	return &Store{
		lockTimeout: lockTimeout,
		items:       make(map[string]entity.Item),
		sites:       make(map[string]entity.Site),
		bins:        make(map[string]entity.Bin),
		balances:    make(map[string]entity.Balance),
		movements:   make(map[string]*entity.Movement),
		sequences:   make(map[string]int),
		locks:       make(map[string]*semaphore.Weighted),
	}
}

func tenantKey(tenantID, id string) string { return tenantID + "|" + id }

// AddItem registra un ítem del catálogo.
func (s *Store) AddItem(item entity.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[tenantKey(item.TenantID, item.ID)] = item
}

// AddSite registra una sede.
func (s *Store) AddSite(site entity.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites[tenantKey(site.TenantID, site.ID)] = site
}

// AddBin registra un bin. La sede debe existir.
func (s *Store) AddBin(bin entity.Bin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sites[tenantKey(bin.TenantID, bin.SiteID)]; !ok {
		return fmt.Errorf("bin %s: %w", bin.ID, domain.ErrInvalidLocation)
	}
	s.bins[tenantKey(bin.TenantID, bin.ID)] = bin
	return nil
}

func (s *Store) FindItem(_ context.Context, tenantID, id string) (*entity.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[tenantKey(tenantID, id)]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *Store) FindSite(_ context.Context, tenantID, id string) (*entity.Site, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	site, ok := s.sites[tenantKey(tenantID, id)]
	if !ok {
		return nil, nil
	}
	return &site, nil
}

func (s *Store) FindBin(_ context.Context, tenantID, id string) (*entity.Bin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bin, ok := s.bins[tenantKey(tenantID, id)]
	if !ok {
		return nil, nil
	}
	return &bin, nil
}

// --- saldos (autocommit) ---

func (s *Store) Get(_ context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	bal, ok := s.balances[key.String()]
	if !ok {
		return nil, nil
	}
	return &bal, nil
}

func (s *Store) GetForUpdate(ctx context.Context, key entity.BalanceKey) (*entity.Balance, error) {
	bal, err := s.Get(ctx, key)
	if err != nil || bal != nil {
		return bal, err
	}
	return entity.NewBalance(key), nil
}

func (s *Store) Save(_ context.Context, bal *entity.Balance) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.balances[bal.BalanceKey.String()] = *bal
	return nil
}

// ListBalances saldos confirmados de un ítem en todas sus ubicaciones, ordenados por llave.
func (s *Store) ListBalances(tenantID, itemID string) []entity.Balance {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []entity.Balance
	for _, b := range s.balances {
		if b.TenantID == tenantID && b.ItemID == itemID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].BalanceKey.String() < out[j].BalanceKey.String() })
	return out
}

// --- movimientos (autocommit) ---

func (s *Store) Create(_ context.Context, mov *entity.Movement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putMovement(mov)
}

func (s *Store) CreateLines(_ context.Context, lines []entity.MovementLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putLines(lines)
}

func (s *Store) GetByID(_ context.Context, tenantID, id string) (*entity.Movement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mov, ok := s.movements[tenantKey(tenantID, id)]
	if !ok {
		return nil, nil
	}
	return cloneMovement(mov), nil
}

// MovementCount cantidad de movimientos confirmados (todos los tenants).
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// checkMovement valida el formato MV-YYYYMMDD-NNNN y que id y número sean únicos por tenant
// (equivalente a los UNIQUE de la tabla).
func (s *Store) checkMovement(mov *entity.Movement) error {
	if _, _, ok := invdomain.ParseMovementNumber(mov.Number); !ok {
		return fmt.Errorf("movement number %q: %w", mov.Number, domain.ErrInvalidInput)
	}
	if _, ok := s.movements[tenantKey(mov.TenantID, mov.ID)]; ok {
		return fmt.Errorf("movement %s: %w", mov.ID, domain.ErrDuplicate)
	}
	for _, m := range s.movements {
		if m.TenantID == mov.TenantID && m.Number == mov.Number {
			return fmt.Errorf("movement number %s: %w", mov.Number, domain.ErrDuplicate)
		}
	}
	return nil
}

func (s *Store) putMovement(mov *entity.Movement) error {
	if err := s.checkMovement(mov); err != nil {
		return err
	}
	c := cloneMovement(mov)
	c.Lines = nil
	s.movements[tenantKey(mov.TenantID, mov.ID)] = c
	return nil
}

func (s *Store) putLines(lines []entity.MovementLine) error {
	for _, l := range lines {
		mov, ok := s.movements[tenantKey(l.TenantID, l.MovementID)]
		if !ok {
			return fmt.Errorf("movement line %d: movement %s: %w", l.LineNo, l.MovementID, domain.ErrNotFound)
		}
		mov.Lines = append(mov.Lines, l)
	}
	return nil
}

// --- log de transacciones (autocommit) ---

func (s *Store) Append(_ context.Context, entries []entity.StockTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entries...)
	return nil
}

func (s *Store) ListByMovement(_ context.Context, tenantID, movementID string) ([]entity.StockTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]entity.StockTransaction, 0)
	for _, e := range s.entries {
		if e.TenantID == tenantID && e.MovementID == movementID {
			out = append(out, e)
		}
	}
	return out, nil
}

// Transactions copia de todo el log confirmado en orden de inserción.
func (s *Store) Transactions() []entity.StockTransaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.StockTransaction(nil), s.entries...)
}

// --- numeración (autocommit) ---

func (s *Store) Next(_ context.Context, tenantID, day string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := tenantKey(tenantID, day)
	s.sequences[k]++
	return s.sequences[k], nil
}

func cloneMovement(m *entity.Movement) *entity.Movement {
	c := *m
	c.Lines = append([]entity.MovementLine(nil), m.Lines...)
	return &c
}
