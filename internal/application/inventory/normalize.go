package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// toUpper arma un Caser por llamada: un Caser puede guardar estado y no se comparte entre goroutines.
func toUpper(s string) string {
	return cases.Upper(language.Und).String(s)
}

// normalizeSource deja la fuente de la referencia en mayúsculas (po -> PO).
func normalizeSource(s string) string {
	return toUpper(strings.TrimSpace(s))
}

// normalizeUOM recorta y pasa a mayúsculas; vacío usa la unidad por defecto del ítem.
func normalizeUOM(uom, itemDefault string) string {
	u := strings.TrimSpace(uom)
	if u == "" {
		u = strings.TrimSpace(itemDefault)
	}
	return toUpper(u)
}

// trimmedPtr devuelve nil para punteros nil o texto vacío.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
