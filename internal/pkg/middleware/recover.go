package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"restmvc/internal/api/response"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/logger"
)

// Recover transforma um panic na cadeia de handlers em uma resposta 500.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				err := fmt.Errorf("panic: %v\n%s", rec, debug.Stack())
				response.Error(w, r, log, apperror.NewInternalError("handler panicked", err))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
