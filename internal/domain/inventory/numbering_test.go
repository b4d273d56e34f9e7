package inventory_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/procura-api/internal/domain/inventory"
)

func TestFormatMovementNumber(t *testing.T) {
	assert.Equal(t, "MV-20261019-0001", inventory.FormatMovementNumber("20261019", 1))
	assert.Equal(t, "MV-20261019-0042", inventory.FormatMovementNumber("20261019", 42))
	assert.Equal(t, "MV-20261019-12345", inventory.FormatMovementNumber("20261019", 12345),
		"más de 9999 movimientos en un día amplían el ancho sin truncar")
}

// El día depende de la zona configurada: 02:00 UTC todavía es el día anterior en Bogotá.
func TestDayKey_Zona(t *testing.T) {
	at := time.Date(2026, 10, 19, 2, 0, 0, 0, time.UTC)
	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	assert.Equal(t, "20261019", inventory.DayKey(at, nil))
	assert.Equal(t, "20261018", inventory.DayKey(at, bogota))
}

func TestParseMovementNumber(t *testing.T) {
	day, seq, ok := inventory.ParseMovementNumber("MV-20261019-0007")
	require.True(t, ok)
	assert.Equal(t, "20261019", day)
	assert.Equal(t, 7, seq)

	for _, bad := range []string{"", "MV-2026-0001", "PO-20261019-0001", "MV-20261019-abc", "MV-20261399-0001", "MV-20261019-0000"} {
		_, _, ok := inventory.ParseMovementNumber(bad)
		assert.False(t, ok, "debe rechazar %q", bad)
	}
}
