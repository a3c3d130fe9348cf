package usecase

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/integration/rowstore"
	"github.com/xavierca1/ligue-crm/internal/infra/queue"
)

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) FetchRows(ctx context.Context, collection string) ([]json.RawMessage, error) {
	args := m.Called(ctx, collection)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]json.RawMessage), args.Error(1)
}

func (m *MockGateway) Mutate(ctx context.Context, collection string, mut rowstore.Mutation) (*rowstore.MutationResult, error) {
	args := m.Called(ctx, collection, mut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rowstore.MutationResult), args.Error(1)
}

// MockSessionStore
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, sid string, user *entity.User) error {
	args := m.Called(ctx, sid, user)
	return args.Error(0)
}

func (m *MockSessionStore) Load(ctx context.Context, sid string) (*entity.User, error) {
	args := m.Called(ctx, sid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockSessionStore) Clear(ctx context.Context, sid string) error {
	args := m.Called(ctx, sid)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadAssigned(ctx context.Context, payload queue.LeadAssignedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func rawRows(rows ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(rows))
	for _, r := range rows {
		out = append(out, json.RawMessage(r))
	}
	return out
}
