package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EffectType etiqueta el efecto de una entrada del log sobre una ubicación.
type EffectType string

const (
	EffectReceive     EffectType = "receive"
	EffectIssue       EffectType = "issue"
	EffectTransferOut EffectType = "transfer_out"
	EffectTransferIn  EffectType = "transfer_in"
	EffectAdjustOut   EffectType = "adjust_out"
	EffectAdjustIn    EffectType = "adjust_in"
)

// Outbound indica si el efecto resta stock de la ubicación.
func (e EffectType) Outbound() bool {
	return e == EffectIssue || e == EffectTransferOut || e == EffectAdjustOut
}

// StockTransaction entrada inmutable del log de transacciones: una por cada efecto
// sobre una ubicación (un traslado produce dos). Append-only.
type StockTransaction struct {
	ID          string
	TenantID    string
	MovementID  string
	ItemID      string
	SiteID      string
	BinID       *string
	Effect      EffectType
	Quantity    decimal.Decimal // positiva; el signo lo da Effect
	UOM         string
	Reference   *Reference
	Note        string
	PerformedBy string
	CreatedAt   time.Time
}

// Signed devuelve la cantidad con signo según el efecto.
func (t StockTransaction) Signed() decimal.Decimal {
	if t.Effect.Outbound() {
		return t.Quantity.Neg()
	}
	return t.Quantity
}
