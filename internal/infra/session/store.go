package session

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/xavierca1/ligue-crm/internal/entity"
)

// CookieName é a chave fixa do cookie que carrega o id da sessão.
const CookieName = "ligue_crm_session"

// Store guarda a identidade autenticada (SEM a credencial) entre requests.
//
// Load nunca devolve erro por sessão corrompida: valor que não parseia ou
// que perdeu campo obrigatório (id, email, role) é descartado e a sessão
// volta como inexistente.
type Store interface {
	Save(ctx context.Context, sid string, user *entity.User) error
	Load(ctx context.Context, sid string) (*entity.User, error)
	Clear(ctx context.Context, sid string) error
}

func NewSessionID() string {
	return uuid.New().String()
}

func encode(user *entity.User) ([]byte, error) {
	return json.Marshal(user)
}

// decode valida o blob guardado. Sessão gravada por versão antiga (ou
// adulterada) é tratada como corrompida, não como erro.
func decode(raw []byte) (*entity.User, bool) {
	var user entity.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false
	}
	if user.ID == "" || user.Email == "" || user.Role == "" {
		return nil, false
	}
	return &user, true
}

// MemoryStore é o backend padrão (instância única).
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, sid string, user *entity.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.sessions[sid] = raw
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, sid string) (*entity.User, error) {
	s.mu.RLock()
	raw, ok := s.sessions[sid]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	user, valid := decode(raw)
	if !valid {
		log.Printf("⚠️ Session: sessão %s corrompida, limpando", sid)
		s.mu.Lock()
		delete(s.sessions, sid)
		s.mu.Unlock()
		return nil, nil
	}
	return user, nil
}

func (s *MemoryStore) Clear(ctx context.Context, sid string) error {
	s.mu.Lock()
	delete(s.sessions, sid)
	s.mu.Unlock()
	return nil
}
