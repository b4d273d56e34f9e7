package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MovementNumberPrefix prefijo de todos los números de movimiento.
const MovementNumberPrefix = "MV"

// DayKey devuelve YYYYMMDD para t en la zona loc (nil = UTC).
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format("20060102")
}

// FormatMovementNumber arma MV-YYYYMMDD-NNNN. Secuencias > 9999 crecen en dígitos.
func FormatMovementNumber(day string, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", MovementNumberPrefix, day, seq)
}

// ParseMovementNumber separa día y secuencia de un número MV-YYYYMMDD-NNNN.
func ParseMovementNumber(number string) (day string, seq int, ok bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 3 || parts[0] != MovementNumberPrefix || len(parts[1]) != 8 || len(parts[2]) < 4 {
		return "", 0, false
	}
	if _, err := time.Parse("20060102", parts[1]); err != nil {
		return "", 0, false
	}
	n, err := strconv.Atoi(parts[2])
	if err != nil || n < 1 {
		return "", 0, false
	}
	return parts[1], n, true
}
