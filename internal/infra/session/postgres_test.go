package session

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

func newMockStore(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewPostgresStore(db), mock
}

// TestPostgresStoreSaveLoadRoundTrip - o payload vai para a coluna TEXT como
// string JSON. Se fosse []byte o driver gravaria literal bytea (\x7b...) e o
// Load trataria toda sessão como corrompida.
func TestPostgresStoreSaveLoadRoundTrip(t *testing.T) {
	store, mock := newMockStore(t)
	ctx := context.Background()

	user := &entity.User{ID: "u1", Name: "Alice", Email: "alice@x.com", Role: entity.RoleAdmin}
	raw, err := encode(user)
	assert.NoError(t, err)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs("sid-1", string(raw)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Save(ctx, "sid-1", user))

	mock.ExpectQuery("SELECT data FROM sessions").
		WithArgs("sid-1").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(string(raw)))

	loaded, err := store.Load(ctx, "sid-1")
	assert.NoError(t, err)
	assert.Equal(t, "u1", loaded.ID)
	assert.Equal(t, "alice@x.com", loaded.Email)
	assert.Equal(t, entity.RoleAdmin, loaded.Role)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStoreUnknownSession(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT data FROM sessions").
		WithArgs("nunca-existiu").
		WillReturnRows(sqlmock.NewRows([]string{"data"}))

	loaded, err := store.Load(context.Background(), "nunca-existiu")
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

// TestPostgresStoreCorruptedRowCleared - mesma política do MemoryStore:
// blob ilegível no banco é limpo e devolvido como sessão inexistente
func TestPostgresStoreCorruptedRowCleared(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT data FROM sessions").
		WithArgs("sid-podre").
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(`\x7b226964223a227531227d`))

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("sid-podre").
		WillReturnResult(sqlmock.NewResult(0, 1))

	loaded, err := store.Load(context.Background(), "sid-podre")
	assert.NoError(t, err)
	assert.Nil(t, loaded)

	assert.NoError(t, mock.ExpectationsWereMet())
}
