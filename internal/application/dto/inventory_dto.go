package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// MovementRequest body para POST /api/inventory/movements.
// Los validate solo cubren forma y tamaño; las reglas del libro las aplica el caso de uso.
type MovementRequest struct {
	Type      string                `json:"type" validate:"max=32"`
	MovedAt   *time.Time            `json:"movedAt,omitempty"`
	Reference *ReferenceDTO         `json:"reference,omitempty"`
	Notes     string                `json:"notes,omitempty" validate:"max=1000"`
	Lines     []MovementLineRequest `json:"lines" validate:"max=500,dive"`
}

// ReferenceDTO documento de origen (PO, SO, MANUAL...).
type ReferenceDTO struct {
	Source string `json:"source" validate:"max=32"`
	ID     string `json:"id" validate:"max=128"`
}

// MovementLineRequest una línea del movimiento.
type MovementLineRequest struct {
	ItemID         string          `json:"itemId" validate:"max=64"`
	Quantity       decimal.Decimal `json:"qty"`
	UOM            string          `json:"uom,omitempty" validate:"max=16"`
	FromLocationID *string         `json:"fromLocationId,omitempty" validate:"omitempty,max=64"`
	ToLocationID   *string         `json:"toLocationId,omitempty" validate:"omitempty,max=64"`
	Reason         string          `json:"reason,omitempty" validate:"max=255"`
}

// LocationDTO par (sede, bin) resuelto.
type LocationDTO struct {
	SiteID string  `json:"siteId"`
	BinID  *string `json:"binId"`
}

// MovementLineResponse línea contabilizada con el saldo resultante.
type MovementLineResponse struct {
	LineNo          int             `json:"lineNo"`
	ItemID          string          `json:"itemId"`
	Quantity        decimal.Decimal `json:"qty"`
	UOM             string          `json:"uom"`
	Reason          string          `json:"reason,omitempty"`
	From            *LocationDTO    `json:"from"`
	To              *LocationDTO    `json:"to"`
	ResultingOnHand decimal.Decimal `json:"resultingOnHand"`
}

// MovementResponse movimiento contabilizado con número y líneas.
type MovementResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	Type      string                 `json:"type"`
	Status    string                 `json:"status"`
	MovedAt   time.Time              `json:"movedAt"`
	Reference *ReferenceDTO          `json:"reference,omitempty"`
	Notes     string                 `json:"notes,omitempty"`
	CreatedBy string                 `json:"createdBy"`
	CreatedAt time.Time              `json:"createdAt"`
	Lines     []MovementLineResponse `json:"lines"`
}

// StockTransactionResponse entrada del log de transacciones.
type StockTransactionResponse struct {
	ID          string          `json:"id"`
	MovementID  string          `json:"movementId"`
	ItemID      string          `json:"itemId"`
	SiteID      string          `json:"siteId"`
	BinID       *string         `json:"binId"`
	Effect      string          `json:"effect"`
	Quantity    decimal.Decimal `json:"qty"`
	UOM         string          `json:"uom"`
	Reference   *ReferenceDTO   `json:"reference,omitempty"`
	Note        string          `json:"note,omitempty"`
	PerformedBy string          `json:"performedBy"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// BalanceResponse saldo de un ítem en una ubicación.
type BalanceResponse struct {
	ItemID    string          `json:"itemId"`
	SiteID    string          `json:"siteId"`
	BinID     *string         `json:"binId"`
	OnHand    decimal.Decimal `json:"onHand"`
	Allocated decimal.Decimal `json:"allocated"`
	OnOrder   decimal.Decimal `json:"onOrder"`
	UOM       string          `json:"uom"`
	UpdatedAt *time.Time      `json:"updatedAt,omitempty"`
}

func toLocationDTO(l *entity.Location) *LocationDTO {
	if l == nil {
		return nil
	}
	return &LocationDTO{SiteID: l.SiteID, BinID: l.BinID}
}

func toReferenceDTO(r *entity.Reference) *ReferenceDTO {
	if r == nil {
		return nil
	}
	return &ReferenceDTO{Source: r.Source, ID: r.ID}
}

// ToMovementResponse arma la respuesta a partir de la entidad.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	out := MovementResponse{
		ID:        m.ID,
		Number:    m.Number,
		Type:      string(m.Type),
		Status:    string(m.Status),
		MovedAt:   m.MovedAt,
		Reference: toReferenceDTO(m.Reference),
		Notes:     m.Notes,
		CreatedBy: m.CreatedBy,
		CreatedAt: m.CreatedAt,
		Lines:     make([]MovementLineResponse, 0, len(m.Lines)),
	}
	for _, l := range m.Lines {
		out.Lines = append(out.Lines, MovementLineResponse{
			LineNo:          l.LineNo,
			ItemID:          l.ItemID,
			Quantity:        l.Quantity,
			UOM:             l.UOM,
			Reason:          l.Reason,
			From:            toLocationDTO(l.From),
			To:              toLocationDTO(l.To),
			ResultingOnHand: l.ResultingOnHand,
		})
	}
	return out
}

// ToStockTransactionResponses convierte el log de un movimiento.
func ToStockTransactionResponses(list []entity.StockTransaction) []StockTransactionResponse {
	out := make([]StockTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, StockTransactionResponse{
			ID:          t.ID,
			MovementID:  t.MovementID,
			ItemID:      t.ItemID,
			SiteID:      t.SiteID,
			BinID:       t.BinID,
			Effect:      string(t.Effect),
			Quantity:    t.Quantity,
			UOM:         t.UOM,
			Reference:   toReferenceDTO(t.Reference),
			Note:        t.Note,
			PerformedBy: t.PerformedBy,
			CreatedAt:   t.CreatedAt,
		})
	}
	return out
}

// ToBalanceResponse convierte un saldo; UpdatedAt se omite si el saldo nunca se movió.
func ToBalanceResponse(b *entity.Balance) BalanceResponse {
	out := BalanceResponse{
		ItemID:    b.ItemID,
		SiteID:    b.SiteID,
		BinID:     b.BinID,
		OnHand:    b.OnHand,
		Allocated: b.Allocated,
		OnOrder:   b.OnOrder,
		UOM:       b.UOM,
	}
	if !b.UpdatedAt.IsZero() {
		t := b.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}
