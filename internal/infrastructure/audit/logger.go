package audit

import (
	"context"

	"github.com/jhoicas/procura-api/internal/application/inventory"
	"github.com/jhoicas/procura-api/internal/domain/entity"
	"github.com/jhoicas/procura-api/pkg/logger"
)

var _ inventory.AuditLogger = (*Logger)(nil)

// Logger registra la creación de movimientos como eventos de auditoría estructurados.
// No devuelve error: la auditoría nunca revierte un movimiento ya confirmado.
type Logger struct {
	log *logger.Logger
}

func NewLogger(log *logger.Logger) *Logger {
	if log == nil {
		log = logger.Nop()
	}
	return &Logger{log: log.Component("audit")}
}

// Created emite el evento movement.created con la cabecera y un resumen de líneas.
func (a *Logger) Created(ctx context.Context, m *entity.Movement, meta inventory.AuditMeta) {
	if m == nil {
		return
	}
	ev := a.log.Info().
		Str("event", "movement.created").
		Str("tenant_id", m.TenantID).
		Str("movement_id", m.ID).
		Str("number", meta.MovementNumber).
		Str("type", string(meta.Type)).
		Time("moved_at", meta.MovedAt).
		Str("user_id", m.CreatedBy).
		Int("lines", len(m.Lines))
	if m.Reference != nil {
		ev = ev.Str("ref_source", m.Reference.Source).Str("ref_id", m.Reference.ID)
	}
	if rid := logger.RequestID(ctx); rid != "" {
		ev = ev.Str("request_id", rid)
	}
	ev.Msg("movimiento creado")
}
