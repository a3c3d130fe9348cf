package usecase

import (
	"context"
	"encoding/json"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/rowstore"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// RowStoreGateway é o único caminho para o row-store. Quem chama pode
// confiar que FetchRows devolve sempre um slice (possivelmente vazio).
type RowStoreGateway interface {
	FetchRows(ctx context.Context, collection string) ([]json.RawMessage, error)
	Mutate(ctx context.Context, collection string, m rowstore.Mutation) (*rowstore.MutationResult, error)
}

type SessionStoreInterface interface {
	Save(ctx context.Context, sid string, user *entity.User) error
	Load(ctx context.Context, sid string) (*entity.User, error)
	Clear(ctx context.Context, sid string) error
}

type QueueProducerInterface interface {
	PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error
}
