package middleware

import (
	"net"
	"net/http"
	"strconv"
	"time"

	"restmvc/internal/api/response"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/cache"
	"restmvc/internal/pkg/logger"
)

// RateLimiter permite limit requisições por IP em cada janela fixa de
// duration. A janela começa na primeira requisição vista do IP.
// Se o cache estiver indisponível, as requisições passam.
func RateLimiter(client cache.Client, limit int, duration time.Duration, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)
			key := "rate-limit:" + ip

			// contar e abrir a janela acontecem numa única chamada ao cache
			count, err := client.IncrWindow(r.Context(), key, duration)
			if err != nil {
				log.Warn("Rate limiter unavailable, allowing request.", map[string]interface{}{"ip": ip, "error": err.Error()})
				next.ServeHTTP(w, r)
				return
			}

			if count > int64(limit) {
				w.Header().Set("X-RateLimit-Remaining", "0")
				w.Header().Set("Retry-After", strconv.Itoa(int(duration.Seconds())))
				response.Error(w, r, log, apperror.NewTooManyRequestsError("too many requests from "+ip+"."))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(int64(limit)-count, 10))
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
