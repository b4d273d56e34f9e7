package dto

// ErrorResponse cuerpo de error HTTP.
// Line y Field ubican el error en el request (Line 1-based; ausente si es de la cabecera).
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Field   string `json:"field,omitempty"`
}
