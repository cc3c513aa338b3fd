// Package response escreve os corpos JSON compartilhados pelos handlers.
package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"restmvc/internal/domain"
	apperror "restmvc/internal/errors"
	"restmvc/internal/pkg/logger"
)

// Write envia data como JSON com successStatus quando err é nil, e o corpo
// de erro padrão caso contrário. Com data nil só o status é escrito.
func Write(w http.ResponseWriter, r *http.Request, log logger.Logger, data interface{}, err error, successStatus int) {
	if err != nil {
		Error(w, r, log, err)
		return
	}

	if data == nil {
		w.WriteHeader(successStatus)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(successStatus)
	if jsonErr := json.NewEncoder(w).Encode(data); jsonErr != nil {
		// os headers já foram enviados, não há mais o que dizer ao cliente
		log.Error("Failed to encode response body.", jsonErr)
	}
}

// Error mapeia err para um status e escreve o corpo de erro padrão.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Server error: %s", category), err)
	} else {
		log.Debug(fmt.Sprintf("Request rejected with status %d.", status), map[string]interface{}{
			"path":     r.URL.Path,
			"category": category,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(domain.ErrorResponse{
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// DecodeJSON lê o corpo da requisição em dst. Qualquer falha de decodificação
// volta como ValidationError.
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return apperror.NewValidationError("request body is required.")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.WrapValidationError(fmt.Sprintf("invalid JSON payload: %v", err), err)
	}
	return nil
}
