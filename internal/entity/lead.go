package entity

import (
	"errors"
	"strings"
	"time"
)

// Pipeline de status do lead. Lost é terminal: lead perdido não volta.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusQualified = "Qualified"
	StatusConverted = "Converted"
	StatusLost      = "Lost"
)

type Lead struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Source       string    `json:"source,omitempty"`
	Status       string    `json:"status"`
	AssignedToID string    `json:"assignedToId,omitempty"` // referência fraca para User.ID
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LeadView é o shape que a UI consome: lead + nome do responsável,
// resolvido na leitura (nunca gravado no row-store).
type LeadView struct {
	Lead
	AssignedToName string `json:"assignedToName"`
}

func Statuses() []string {
	return []string{StatusNew, StatusContacted, StatusQualified, StatusConverted, StatusLost}
}

func ValidStatus(status string) bool {
	return StatusRank(status) >= 0
}

// StatusRank devolve a posição no pipeline (Lost fica por último).
// Retorna -1 para status desconhecido.
func StatusRank(status string) int {
	for i, s := range Statuses() {
		if s == status {
			return i
		}
	}
	return -1
}

// TerminalStatus indica status que não admite progressão no pipeline.
func TerminalStatus(status string) bool {
	return status == StatusConverted || status == StatusLost
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(l.Email) == "" {
		return errors.New("email is required")
	}
	if !ValidStatus(l.Status) {
		return errors.New("status is invalid")
	}
	return nil
}
