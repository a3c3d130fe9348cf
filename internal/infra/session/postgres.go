package session

import (
	"context"
	"database/sql"
	"log"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// PostgresStore guarda sessões em banco para deploys com mais de uma
// instância da API. Tabela esperada:
//
//	CREATE TABLE sessions (
//	    sid        TEXT PRIMARY KEY,
//	    data       TEXT NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type PostgresStore struct {
	DB *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

func (s *PostgresStore) Save(ctx context.Context, sid string, user *entity.User) error {
	raw, err := encode(user)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sessions (sid, data)
		VALUES ($1, $2)
		ON CONFLICT (sid)
		DO UPDATE SET data = EXCLUDED.data
	`
	// lib/pq serializa []byte como literal bytea hexadecimal, o que
	// corromperia a coluna TEXT. Gravamos como string.
	_, err = s.DB.ExecContext(ctx, query, sid, string(raw))
	return err
}

func (s *PostgresStore) Load(ctx context.Context, sid string) (*entity.User, error) {
	var raw string
	err := s.DB.QueryRowContext(ctx, `SELECT data FROM sessions WHERE sid = $1`, sid).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	user, valid := decode([]byte(raw))
	if !valid {
		log.Printf("⚠️ Session: sessão %s corrompida no banco, limpando", sid)
		_ = s.Clear(ctx, sid)
		return nil, nil
	}
	return user, nil
}

func (s *PostgresStore) Clear(ctx context.Context, sid string) error {
	_, err := s.DB.ExecContext(ctx, `DELETE FROM sessions WHERE sid = $1`, sid)
	return err
}
