package rowstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL), server
}

// TestFetchRowsOK - caminho feliz da listagem
func TestFetchRowsOK(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Leads", r.URL.Query().Get("sheet"))
		w.Write([]byte(`[{"id":"1","name":"Jane"},{"id":"2","name":"John"}]`))
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
}

// TestFetchRowsNoContent - 204 vira slice vazio, nunca erro
func TestFetchRowsNoContent(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionUsers)

	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

// TestFetchRowsEmptyBody - 200 sem body também vira slice vazio
func TestFetchRowsEmptyBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

// TestFetchRowsNullBody - `null` parseia como slice nil; o contrato exige
// slice não-nil mesmo assim
func TestFetchRowsNullBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.NoError(t, err)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

// TestFetchRowsGarbageBody - body que não parseia degrada para vazio
func TestFetchRowsGarbageBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>isso não é JSON</html>`))
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

// TestFetchRowsErrorObject - o backend às vezes devolve objeto de erro
// com status 200; coleção normaliza para vazio
func TestFetchRowsErrorObject(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"sheet not found"}`))
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.NoError(t, err)
	assert.Empty(t, rows)
}

// TestFetchRowsHTTPError - status não-2xx é o ÚNICO caso que vira erro
func TestFetchRowsHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	})
	defer server.Close()

	rows, err := client.FetchRows(context.Background(), CollectionLeads)

	assert.Nil(t, rows)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusInternalServerError, reqErr.StatusCode)
	assert.Equal(t, "boom", reqErr.Body)
}

// TestMutateCanonicalEnvelope - envelope {success, lead, message}
func TestMutateCanonicalEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"success":true,"lead":{"id":"42","name":"Jane"}}`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionLeads, Mutation{Action: ActionAdd})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.JSONEq(t, `{"id":"42","name":"Jane"}`, string(result.Row))
}

// TestMutateBareIDEnvelope - só {id} na resposta
func TestMutateBareIDEnvelope(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":17}`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionUsers, Mutation{Action: ActionAdd})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "17", result.ID)
	assert.Nil(t, result.Row)
}

// TestMutateBareRow - modo legado: a linha crua, sem envelope
func TestMutateBareRow(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"7","name":"Jane","email":"jane@x.com"}`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionLeads, Mutation{Action: ActionUpdate, ID: "7"})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.JSONEq(t, `{"id":"7","name":"Jane","email":"jane@x.com"}`, string(result.Row))
}

// TestMutateStoreFailure - success:false NÃO é erro do gateway; quem
// chama decide como reportar (delete de id inexistente cai aqui)
func TestMutateStoreFailure(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"row not found"}`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionLeads, Mutation{Action: ActionDelete, ID: "999"})

	assert.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, "row not found", result.Message)
}

// TestMutateEmptyBody - mutação aceita sem corpo = sucesso sem linha
func TestMutateEmptyBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionLeads, Mutation{Action: ActionDelete, ID: "1"})

	assert.NoError(t, err)
	assert.True(t, result.Success)
	assert.Nil(t, result.Row)
}

// TestMutateMalformedBody - mutação com body ilegível é erro de verdade
// (diferente de fetch de coleção, que degrada)
func TestMutateMalformedBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>erro 500 disfarçado</html>`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionLeads, Mutation{Action: ActionAdd})

	assert.Nil(t, result)
	var malformed *MalformedResponseError
	assert.ErrorAs(t, err, &malformed)
}

// TestMutateHTTPError - status não-2xx em mutação
func TestMutateHTTPError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`upstream timeout`))
	})
	defer server.Close()

	result, err := client.Mutate(context.Background(), CollectionUsers, Mutation{Action: ActionAdd})

	assert.Nil(t, result)
	var reqErr *RequestError
	assert.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusBadGateway, reqErr.StatusCode)
}
