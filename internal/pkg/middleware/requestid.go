package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// ContextKey tipa os valores que este pacote guarda no contexto da requisição.
type ContextKey int

const (
	RequestIDKey ContextKey = iota
)

// RequestIDHeader carrega o id da requisição nos dois sentidos.
const RequestIDHeader = "X-Request-ID"

// RequestID anexa um id a cada requisição. Um X-Request-ID enviado pelo
// cliente é reaproveitado; senão um novo UUID é gerado. O id volta no
// header da resposta.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), RequestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestIDFromContext retorna o id definido por RequestID.
func GetRequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(RequestIDKey).(string)
	return id, ok
}
