package rowstore

import "fmt"

// RequestError: o row-store respondeu com status HTTP não-2xx.
type RequestError struct {
	Collection string
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("row-store %s respondeu %d: %s", e.Collection, e.StatusCode, e.Body)
}

// MalformedResponseError: veio body, mas não dá pra interpretar como o
// envelope esperado. Só acontece em mutações; fetch de coleção degrada
// para vazio em vez de levantar esse erro.
type MalformedResponseError struct {
	Collection string
	Body       string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("resposta do row-store %s em formato inesperado: %s", e.Collection, e.Body)
}
