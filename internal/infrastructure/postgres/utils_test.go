package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsLockFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"serialization", &pgconn.PgError{Code: "40001"}, true},
		{"query_canceled", &pgconn.PgError{Code: "57014"}, true},
		{"envuelto", fmt.Errorf("get balance: %w", &pgconn.PgError{Code: "40P01"}), true},
		{"unique_violation", &pgconn.PgError{Code: "23505"}, false},
		{"check_violation", &pgconn.PgError{Code: "23514"}, false},
		{"no pg", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isLockFailure(tt.err))
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(errors.New("otro")))
}

func TestBinKeyRoundTrip(t *testing.T) {
	assert.Equal(t, "", binKey(nil))
	assert.Nil(t, binFromKey(""))

	b := "bin-1"
	assert.Equal(t, "bin-1", binKey(&b))
	assert.Equal(t, "bin-1", *binFromKey("bin-1"))
}
