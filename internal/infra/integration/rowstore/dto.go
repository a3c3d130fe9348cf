package rowstore

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Ações aceitas pelo web-app da planilha
const (
	ActionAdd    = "add"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type Mutation struct {
	Action string          `json:"action"`
	ID     string          `json:"id,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// MutationResult é o envelope já normalizado. Row carrega a linha afetada
// quando o store devolveu uma; ID carrega o identificador quando só ele veio.
type MutationResult struct {
	Success bool
	Message string
	Row     json.RawMessage
	ID      string
}

// mutationEnvelope cobre o formato canônico. As chaves user/lead/row são o
// mesmo campo com nomes diferentes conforme a coleção (herança das versões
// antigas do web-app).
type mutationEnvelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	User    json.RawMessage `json:"user"`
	Lead    json.RawMessage `json:"lead"`
	Row     json.RawMessage `json:"row"`
	ID      idValue         `json:"id"`
}

// idValue aceita id numérico ou string (a planilha não se decide).
type idValue string

func (v *idValue) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*v = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*v = idValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*v = idValue(n.String())
		return nil
	}
	return fmt.Errorf("id em formato inesperado: %s", string(b))
}

// parseMutationResult normaliza as três variantes de resposta:
//  1. envelope {success, user|lead|row, id, message}  (canônico)
//  2. envelope mínimo {success} ou {id}
//  3. a linha crua (objeto com campo id, sem chave success)  (legado)
func parseMutationResult(body []byte) (*MutationResult, error) {
	var env mutationEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	result := &MutationResult{
		Message: env.Message,
		ID:      string(env.ID),
	}

	switch {
	case env.User != nil:
		result.Row = env.User
	case env.Lead != nil:
		result.Row = env.Lead
	case env.Row != nil:
		result.Row = env.Row
	}

	if env.Success != nil {
		result.Success = *env.Success
		return result, nil
	}

	// Sem chave success: modo legado. Se o objeto tem campos além de
	// id/message, o body é a própria linha; senão é o envelope mínimo.
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, err
	}
	result.Success = true
	if result.Row == nil {
		for k := range probe {
			if k != "id" && k != "message" {
				result.Row = json.RawMessage(append([]byte(nil), body...))
				break
			}
		}
	}
	return result, nil
}
