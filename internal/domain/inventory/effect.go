package inventory

import (
	"github.com/jhoicas/procura-api/internal/domain"
	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// Side es el efecto de una línea sobre una ubicación: signo del delta y etiqueta del log.
type Side struct {
	Location entity.Location
	Outbound bool // true resta stock, false suma
	Effect   entity.EffectType
	Field    string // campo del request que originó la ubicación (para errores)
}

// LineEffect es la unión cerrada de los cuatro tipos de movimiento. Cada variante exige
// sus ubicaciones por construcción; Sides devuelve los efectos en orden de aplicación
// (origen primero, destino después).
type LineEffect interface {
	Type() entity.MovementType
	Sides() []Side
	From() *entity.Location
	To() *entity.Location
	lineEffect()
}

const (
	FieldFrom = "fromLocationId"
	FieldTo   = "toLocationId"
)

// Receipt entrada a To.
type Receipt struct{ Dest entity.Location }

// Issue salida desde From.
type Issue struct{ Src entity.Location }

// Transfer salida de From y entrada en To; From != To.
type Transfer struct{ Src, Dest entity.Location }

// Adjust salida de From y/o entrada en To; al menos uno presente.
type Adjust struct{ Src, Dest *entity.Location }

func (Receipt) Type() entity.MovementType  { return entity.MovementTypeReceipt }
func (Issue) Type() entity.MovementType    { return entity.MovementTypeIssue }
func (Transfer) Type() entity.MovementType { return entity.MovementTypeTransfer }
func (Adjust) Type() entity.MovementType   { return entity.MovementTypeAdjust }

func (e Receipt) Sides() []Side {
	return []Side{{Location: e.Dest, Effect: entity.EffectReceive, Field: FieldTo}}
}

func (e Issue) Sides() []Side {
	return []Side{{Location: e.Src, Outbound: true, Effect: entity.EffectIssue, Field: FieldFrom}}
}

func (e Transfer) Sides() []Side {
	return []Side{
		{Location: e.Src, Outbound: true, Effect: entity.EffectTransferOut, Field: FieldFrom},
		{Location: e.Dest, Effect: entity.EffectTransferIn, Field: FieldTo},
	}
}

func (e Adjust) Sides() []Side {
	sides := make([]Side, 0, 2)
	if e.Src != nil {
		sides = append(sides, Side{Location: *e.Src, Outbound: true, Effect: entity.EffectAdjustOut, Field: FieldFrom})
	}
	if e.Dest != nil {
		sides = append(sides, Side{Location: *e.Dest, Effect: entity.EffectAdjustIn, Field: FieldTo})
	}
	return sides
}

func (Receipt) From() *entity.Location    { return nil }
func (e Receipt) To() *entity.Location    { return &e.Dest }
func (e Issue) From() *entity.Location    { return &e.Src }
func (Issue) To() *entity.Location        { return nil }
func (e Transfer) From() *entity.Location { return &e.Src }
func (e Transfer) To() *entity.Location   { return &e.Dest }
func (e Adjust) From() *entity.Location   { return e.Src }
func (e Adjust) To() *entity.Location     { return e.Dest }

func (Receipt) lineEffect()  {}
func (Issue) lineEffect()    {}
func (Transfer) lineEffect() {}
func (Adjust) lineEffect()   {}

// ParseMovementType valida el tipo recibido como texto.
func ParseMovementType(s string) (entity.MovementType, error) {
	switch t := entity.MovementType(s); t {
	case entity.MovementTypeReceipt, entity.MovementTypeIssue, entity.MovementTypeTransfer, entity.MovementTypeAdjust:
		return t, nil
	}
	return "", domain.ErrUnsupportedMovementType
}

// NewLineEffect construye la variante del tipo t con las ubicaciones ya resueltas (nil = no indicada).
// Los errores vienen envueltos en domain.FieldError con la línea indicada.
func NewLineEffect(line int, t entity.MovementType, from, to *entity.Location) (LineEffect, error) {
	switch t {
	case entity.MovementTypeReceipt:
		if to == nil {
			return nil, domain.LineErr(line, FieldTo, domain.ErrLocationRequired)
		}
		return Receipt{Dest: *to}, nil
	case entity.MovementTypeIssue:
		if from == nil {
			return nil, domain.LineErr(line, FieldFrom, domain.ErrLocationRequired)
		}
		return Issue{Src: *from}, nil
	case entity.MovementTypeTransfer:
		if from == nil {
			return nil, domain.LineErr(line, FieldFrom, domain.ErrLocationRequired)
		}
		if to == nil {
			return nil, domain.LineErr(line, FieldTo, domain.ErrLocationRequired)
		}
		if from.Equal(*to) {
			return nil, domain.LineErr(line, FieldTo, domain.ErrSameLocation)
		}
		return Transfer{Src: *from, Dest: *to}, nil
	case entity.MovementTypeAdjust:
		if from == nil && to == nil {
			return nil, domain.LineErr(line, FieldFrom, domain.ErrLocationRequired)
		}
		return Adjust{Src: from, Dest: to}, nil
	}
	return nil, domain.LineErr(line, "type", domain.ErrUnsupportedMovementType)
}

// UsesFrom / UsesTo indican qué lados consume cada tipo; los demás se ignoran.
func UsesFrom(t entity.MovementType) bool { return t != entity.MovementTypeReceipt }
func UsesTo(t entity.MovementType) bool   { return t != entity.MovementTypeIssue }
