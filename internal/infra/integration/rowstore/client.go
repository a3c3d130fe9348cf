package rowstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Coleções conhecidas da planilha
const (
	CollectionUsers = "Users"
	CollectionLeads = "Leads"
)

// Client fala com o row-store (planilha atrás de um web-app HTTP).
//
// Contrato de wire escolhido (o backend já mudou de formato várias vezes,
// este é o canônico daqui pra frente):
//   - Endereçamento por query string: GET/POST {base}?sheet=Users
//   - Mutação: POST com body {"action": "add|update|delete", "id": "...", "data": {...}}
//   - Envelope de resposta: {"success": bool, "user"|"lead"|"row": {...}, "id": "...", "message": "..."}
//
// O backend legado às vezes responde a linha crua ou só {"id": "..."};
// o normalizador tolera os dois (ver dto.go).
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// FetchRows busca todas as linhas de uma coleção.
//
// Política de degradação (contrato com quem chama): o retorno é SEMPRE um
// slice, possivelmente vazio, nunca nil-com-sucesso-ambíguo e nunca erro de
// parse. HTTP 204, body vazio, JSON inválido e payload que não é array
// viram slice vazio. Só status não-2xx vira erro.
func (c *Client) FetchRows(ctx context.Context, collection string) ([]json.RawMessage, error) {
	body, status, err := c.do(ctx, http.MethodGet, collection, nil)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		return []json.RawMessage{}, nil
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		// O backend já devolveu objeto de erro com status 200. Coleção
		// degrada para vazio em vez de quebrar a listagem inteira.
		log.Printf("⚠️ RowStore: GET %s devolveu payload que não é array, normalizando para vazio: %s", collection, truncate(body, 200))
		return []json.RawMessage{}, nil
	}
	if rows == nil {
		// body era o literal `null`
		return []json.RawMessage{}, nil
	}

	return rows, nil
}

// Mutate executa add/update/delete numa coleção. O resultado vem
// normalizado; success=false NÃO vira erro aqui, a camada de usecase
// decide como reportar.
func (c *Client) Mutate(ctx context.Context, collection string, m Mutation) (*MutationResult, error) {
	payload, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("erro ao converter payload: %w", err)
	}

	body, status, err := c.do(ctx, http.MethodPost, collection, payload)
	if err != nil {
		return nil, err
	}

	if status == http.StatusNoContent || len(bytes.TrimSpace(body)) == 0 {
		// Sucesso sem corpo: o store aceitou mas não devolveu a linha.
		return &MutationResult{Success: true}, nil
	}

	result, err := parseMutationResult(body)
	if err != nil {
		return nil, &MalformedResponseError{Collection: collection, Body: truncate(body, 500)}
	}

	return result, nil
}

func (c *Client) do(ctx context.Context, method, collection string, payload []byte) ([]byte, int, error) {
	endpoint := fmt.Sprintf("%s?sheet=%s", c.baseURL, url.QueryEscape(collection))

	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, 0, fmt.Errorf("erro ao montar request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	log.Printf("📡 RowStore: %s %s payload=%s", method, collection, truncate(payload, 120))

	resp, err := c.http.Do(req)
	if err != nil {
		recordRequest(collection, method, "network_error")
		return nil, 0, fmt.Errorf("falha ao conectar no row-store: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		recordRequest(collection, method, "http_error")
		log.Printf("❌ RowStore: %s %s falhou com status %d: %s", method, collection, resp.StatusCode, truncate(body, 200))
		return nil, resp.StatusCode, &RequestError{
			Collection: collection,
			StatusCode: resp.StatusCode,
			Body:       truncate(body, 500),
		}
	}

	recordRequest(collection, method, "ok")
	return body, resp.StatusCode, nil
}

func truncate(b []byte, max int) string {
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
