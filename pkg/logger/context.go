package logger

import "context"

type ctxKey struct{}

// WithRequestID guarda el id de la petición en ctx para que los logs lo incluyan.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID devuelve el id guardado con WithRequestID, o "".
func RequestID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
