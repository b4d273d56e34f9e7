package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/application/dto"
	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	invdomain "github.com/jhoicas/procura-api/internal/domain/inventory"
	"github.com/jhoicas/procura-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/procura-api/internal/interfaces/http"
	"github.com/jhoicas/procura-api/pkg/logger"
)

func buildInventoryApp(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.NewStore(100 * time.Millisecond)
	store.AddItem(entity.Item{ID: "item-1", TenantID: testTenantID, SKU: "TOR-001", Name: "Tornillo", DefaultUOM: "UND"})
	store.AddSite(entity.Site{ID: "site-a", TenantID: testTenantID, Name: "Bodega A"})
	store.AddSite(entity.Site{ID: "site-b", TenantID: testTenantID, Name: "Bodega B"})
	require.NoError(t, store.AddBin(entity.Bin{ID: "bin-a1", TenantID: testTenantID, SiteID: "site-a", Code: "A-01"}))

	clock := inventory.ClockFunc(func() time.Time { return time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC) })
	resolver := inventory.NewLocationResolver(store, store)
	record := inventory.NewRecordMovementUseCase(
		store, store, resolver,
		inventory.NewBalanceLedger(invdomain.DefaultNegativeTolerance, clock),
		inventory.NewMovementNumberer(time.UTC),
		nil, clock, logger.Nop(),
	)
	queries := inventory.NewQueryUseCase(store, store, store, store, resolver)

	app := fiber.New()
	app.Use(requestid.New())
	apphttp.Router(app, apphttp.RouterDeps{
		RecordMovement: record,
		Queries:        queries,
		JWTSecret:      testJWTSecret,
		Logger:         logger.Nop(),
	})
	return app, store
}

func send(t *testing.T, app *fiber.App, method, path, body, auth string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type transactionList struct {
	Total        int                            `json:"total"`
	Transactions []dto.StockTransactionResponse `json:"transactions"`
}

func postMovement(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	return send(t, app, http.MethodPost, "/api/inventory/movements", body, tokenForRole(t, "bodeguero"))
}

func TestInventoryHandler_RecordReceipt(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postMovement(t, app, `{
		"type": "receipt",
		"reference": {"source": "po", "id": "PO-1"},
		"lines": [{"itemId": "item-1", "qty": 10, "toLocationId": "bin-a1"}]
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "MV-20250314-0001", mov.Number)
	assert.Equal(t, "receipt", mov.Type)
	assert.Equal(t, "posted", mov.Status)
	assert.Equal(t, testUserID, mov.CreatedBy)
	require.NotNil(t, mov.Reference)
	assert.Equal(t, "PO", mov.Reference.Source)
	require.Len(t, mov.Lines, 1)
	assert.True(t, mov.Lines[0].ResultingOnHand.Equal(decimal.NewFromInt(10)))
	assert.Nil(t, mov.Lines[0].From)
	require.NotNil(t, mov.Lines[0].To)
	assert.Equal(t, "site-a", mov.Lines[0].To.SiteID)
}

func TestInventoryHandler_InsufficientStockIs409WithLineAndField(t *testing.T) {
	app, store := buildInventoryApp(t)

	resp := postMovement(t, app, `{"type": "issue", "lines": [{"itemId": "item-1", "qty": "5", "fromLocationId": "site-a"}]}`)
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, 1, body.Line)
	assert.Equal(t, "fromLocationId", body.Field)
	assert.Zero(t, store.MovementCount())
}

func TestInventoryHandler_DomainRejectionsAre422(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		code  string
		line  int
		field string
	}{
		{"tipo", `{"type": "scrap", "lines": [{"itemId": "item-1", "qty": 1, "toLocationId": "site-a"}]}`, "UNSUPPORTED_MOVEMENT_TYPE", 0, "type"},
		{"vacío", `{"type": "receipt", "lines": []}`, "EMPTY_MOVEMENT", 0, "lines"},
		{"cantidad", `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 0, "toLocationId": "site-a"}]}`, "INVALID_QUANTITY", 1, "qty"},
		{"escala", `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": "0.0000001", "toLocationId": "site-a"}]}`, "INVALID_QUANTITY", 1, "qty"},
		{"desborde", `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": "123456789012345.5", "toLocationId": "site-a"}]}`, "INVALID_QUANTITY", 1, "qty"},
		{"ítem", `{"type": "receipt", "lines": [{"itemId": "nope", "qty": 1, "toLocationId": "site-a"}]}`, "UNKNOWN_ITEM", 1, "itemId"},
		{"ubicación", `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 1, "toLocationId": "ghost"}]}`, "INVALID_LOCATION", 1, "toLocationId"},
		{"requerida", `{"type": "issue", "lines": [{"itemId": "item-1", "qty": 1}]}`, "LOCATION_REQUIRED", 1, "fromLocationId"},
		{"misma", `{"type": "transfer", "lines": [{"itemId": "item-1", "qty": 1, "fromLocationId": "site-a", "toLocationId": "site-a"}]}`, "SAME_LOCATION", 1, "toLocationId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := buildInventoryApp(t)
			resp := postMovement(t, app, tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

			body := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, tt.code, body.Code)
			assert.Equal(t, tt.line, body.Line)
			assert.Equal(t, tt.field, body.Field)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestInventoryHandler_BadRequests(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postMovement(t, app, `{"type": "receipt", "lines": [`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	longReason := strings.Repeat("x", 300)
	resp = postMovement(t, app, `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 1, "toLocationId": "site-a", "reason": "`+longReason+`"}]}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Equal(t, "Reason", body.Field)
}

func TestInventoryHandler_PostingRequiresWarehouseRole(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := send(t, app, http.MethodPost, "/api/inventory/movements",
		`{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 1, "toLocationId": "site-a"}]}`,
		tokenForRole(t, "comprador"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = send(t, app, http.MethodPost, "/api/inventory/movements", `{}`, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestInventoryHandler_ReadEndpoints(t *testing.T) {
	app, _ := buildInventoryApp(t)

	resp := postMovement(t, app, `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 10, "toLocationId": "site-a"}]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = postMovement(t, app, `{"type": "transfer", "notes": "rebalanceo", "lines": [
		{"itemId": "item-1", "qty": 4, "fromLocationId": "site-a", "toLocationId": "site-b"}
	]}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	transfer := decode[dto.MovementResponse](t, resp)

	// cualquier rol autenticado puede consultar
	reader := tokenForRole(t, "comprador")

	resp = send(t, app, http.MethodGet, "/api/inventory/movements/"+transfer.ID, "", reader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, transfer.Number, got.Number)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, 1, got.Lines[0].LineNo)

	resp = send(t, app, http.MethodGet, "/api/inventory/movements/"+transfer.ID+"/transactions", "", reader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	txs := decode[transactionList](t, resp)
	assert.Equal(t, 2, txs.Total)
	require.Len(t, txs.Transactions, 2)
	assert.Equal(t, "transfer_out", txs.Transactions[0].Effect)
	assert.Equal(t, "transfer_in", txs.Transactions[1].Effect)
	assert.Equal(t, "rebalanceo", txs.Transactions[0].Note)

	resp = send(t, app, http.MethodGet, "/api/inventory/balances?item_id=item-1&location_id=site-a", "", reader)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	bal := decode[dto.BalanceResponse](t, resp)
	assert.True(t, bal.OnHand.Equal(decimal.NewFromInt(6)))
	assert.Nil(t, bal.BinID)

	resp = send(t, app, http.MethodGet, "/api/inventory/movements/missing", "", reader)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = send(t, app, http.MethodGet, "/api/inventory/balances?item_id=item-1", "", reader)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "LOCATION_REQUIRED", decode[dto.ErrorResponse](t, resp).Code)
}

func TestInventoryHandler_LockTimeoutIs503(t *testing.T) {
	app, store := buildInventoryApp(t)

	locked := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.Run(context.Background(), func(ctx context.Context, repos inventory.TxRepos) error {
			key := entity.BalanceKey{TenantID: testTenantID, ItemID: "item-1", SiteID: "site-a"}
			if _, err := repos.Balances.GetForUpdate(ctx, key); err != nil {
				return err
			}
			close(locked)
			<-release
			return errors.New("abortar")
		})
	}()
	<-locked

	resp := postMovement(t, app, `{"type": "receipt", "lines": [{"itemId": "item-1", "qty": 1, "toLocationId": "site-a"}]}`)
	close(release)
	<-done

	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "1", resp.Header.Get("Retry-After"))
	assert.Equal(t, "LOCK_TIMEOUT", decode[dto.ErrorResponse](t, resp).Code)
}
