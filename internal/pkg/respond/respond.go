package respond

import (
	"encoding/json"
	"fmt"
	"net/http"

	"bistroboss/internal/domain"
	apperror "bistroboss/internal/errors"
	"bistroboss/internal/pkg/logger"
)

// JSON escreve a resposta de sucesso e registra a requisição.
func JSON(w http.ResponseWriter, r *http.Request, log logger.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	log.Info("Requisição concluída com sucesso", map[string]interface{}{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
	})

	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// O cabeçalho já foi enviado; só resta registrar.
		log.Error("Falha ao codificar JSON de resposta", err)
	}
}

// Error traduz o erro (AppError ou não) para status HTTP e corpo padronizado.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, category, message := apperror.MapToHTTPStatus(err)

	if status >= http.StatusInternalServerError {
		log.Error(fmt.Sprintf("Erro de Servidor: %s %s (%s)", r.Method, r.URL.Path, category), err)
	} else {
		log.Debug(fmt.Sprintf("Requisição rejeitada com status %d. Categoria: %s", status, category), map[string]interface{}{
			"path":  r.URL.Path,
			"cause": err.Error(),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(domain.ErrorResponse{
		Error:    true,
		Code:     status,
		Category: category,
		Message:  message,
	})
}

// Decode lê o corpo JSON da requisição; falhas viram ValidationError.
func Decode(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return apperror.NewValidationError("Corpo da requisição ausente.")
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperror.NewValidationError("Payload JSON inválido.")
	}
	return nil
}
