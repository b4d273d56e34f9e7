package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de inventario.
type MovementType string

// Tipos de movimiento soportados.
const (
	MovementTypeReceipt  MovementType = "receipt"  // entrada
	MovementTypeIssue    MovementType = "issue"    // salida
	MovementTypeTransfer MovementType = "transfer" // traslado entre ubicaciones
	MovementTypeAdjust   MovementType = "adjust"   // ajuste (salida y/o entrada)
)

// MovementStatus estado del movimiento. Este núcleo solo produce movimientos contabilizados.
type MovementStatus string

const MovementStatusPosted MovementStatus = "posted"

// Reference documento de origen del movimiento (PO, SO, MANUAL, ...).
type Reference struct {
	Source string
	ID     string
}

// Movement cabecera de un movimiento contabilizado. Inmutable una vez creado.
type Movement struct {
	ID        string
	TenantID  string
	Number    string // MV-YYYYMMDD-NNNN
	Type      MovementType
	Status    MovementStatus
	MovedAt   time.Time
	Reference *Reference
	Notes     string
	CreatedBy string
	CreatedAt time.Time
	Lines     []MovementLine
}

// MovementLine línea de un movimiento. Quantity siempre es positiva; la dirección la dan
// el tipo del movimiento y las ubicaciones presentes.
type MovementLine struct {
	MovementID      string
	TenantID        string
	LineNo          int // 1-based, orden de entrada
	ItemID          string
	Quantity        decimal.Decimal
	UOM             string
	Reason          string
	From            *Location
	To              *Location
	ResultingOnHand decimal.Decimal // saldo resultante en la última ubicación afectada
}
