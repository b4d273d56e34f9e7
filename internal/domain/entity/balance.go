package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceKey identifica un saldo: (tenant, ítem, sede, bin-o-nil).
type BalanceKey struct {
	TenantID string
	ItemID   string
	SiteID   string
	BinID    *string
}

// KeyFor arma la llave de saldo de un ítem en una ubicación.
func KeyFor(tenantID, itemID string, loc Location) BalanceKey {
	return BalanceKey{TenantID: tenantID, ItemID: itemID, SiteID: loc.SiteID, BinID: loc.BinID}
}

// String serializa la llave; sirve como llave de bloqueo en memoria.
func (k BalanceKey) String() string {
	bin := "-"
	if k.BinID != nil {
		bin = *k.BinID
	}
	return k.TenantID + "|" + k.ItemID + "|" + k.SiteID + "|" + bin
}

// Balance es el saldo mutable de un ítem en una ubicación. Solo lo modifica el BalanceLedger.
// Invariante: OnHand >= -tolerancia en cada aplicación de delta.
type Balance struct {
	BalanceKey
	OnHand    decimal.Decimal
	Allocated decimal.Decimal // no lo modifica este núcleo
	OnOrder   decimal.Decimal // no lo modifica este núcleo
	UOM       string
	UpdatedAt time.Time
}

// NewBalance crea un saldo en cero (creación perezosa en el primer movimiento).
func NewBalance(key BalanceKey) *Balance {
	return &Balance{
		BalanceKey: key,
		OnHand:     decimal.Zero,
		Allocated:  decimal.Zero,
		OnOrder:    decimal.Zero,
	}
}
