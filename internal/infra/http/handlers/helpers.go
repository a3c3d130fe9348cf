package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// writeError traduz a taxonomia de erros para status HTTP. Erro de
// validação e de domínio viram a mensagem crua (ferramenta interna,
// não é fronteira de segurança); o resto vira 502 do gateway.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	switch {
	case usecase.IsDomainError(err):
		status = http.StatusUnprocessableEntity
	default:
		if _, ok := err.(usecase.ValidationError); ok {
			status = http.StatusBadRequest
		}
	}

	writeJSON(w, status, errorResponse{Success: false, Message: err.Error()})
}
