package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// Códigos de contención que el cliente puede reintentar sin cambios.
const (
	codeLockNotAvailable     = "55P03" // lock_timeout
	codeDeadlockDetected     = "40P01"
	codeSerializationFailure = "40001"
	codeQueryCanceled        = "57014" // statement_timeout o cancelación del servidor
)

// isLockFailure indica si err es contención reintentable: timeout de bloqueo, deadlock,
// conflicto de serialización o sentencia cancelada por timeout.
func isLockFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	switch pgErr.Code {
	case codeLockNotAvailable, codeDeadlockDetected, codeSerializationFailure, codeQueryCanceled:
		return true
	}
	return false
}

// binKey traduce el bin opcional a la columna NOT NULL de saldos ('' = nivel sede).
func binKey(bin *string) string {
	if bin == nil {
		return ""
	}
	return *bin
}

func binFromKey(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
