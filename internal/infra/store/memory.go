package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/infra"

	"github.com/google/uuid"
)

// MemoryRequestStore implements the same contract as the Postgres store with
// an in-process mutex instead of a conditional UPDATE. Used by unit tests and
// single-node deployments without a durable store.
type MemoryRequestStore struct {
	mu       sync.RWMutex
	requests map[uuid.UUID]*request.ServiceRequest
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{
		requests: make(map[uuid.UUID]*request.ServiceRequest),
	}
}

func (s *MemoryRequestStore) Create(_ context.Context, req *request.ServiceRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.requests[req.ID()]; exists {
		return infra.WrapRepoErr("service request already exists", nil, infra.KindDuplicateKey)
	}
	s.requests[req.ID()] = req
	return nil
}

func (s *MemoryRequestStore) FindByID(_ context.Context, id uuid.UUID) (*request.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	req, ok := s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr("service request not found", nil, infra.KindNotFound)
	}
	return req, nil
}

// CompareAndSwapStatus checks status and version under the lock, then swaps
// in the advanced record. Exactly one of any set of racing callers observes a
// matching precondition; the rest get a stale error and must re-read.
func (s *MemoryRequestStore) CompareAndSwapStatus(
	_ context.Context,
	id uuid.UUID,
	expectedStatus request.Status,
	expectedVersion int64,
	plan request.Plan,
	now time.Time,
) (*request.ServiceRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.requests[id]
	if !ok {
		return nil, infra.WrapRepoErr("service request not found", nil, infra.KindNotFound)
	}
	if current.Status() != expectedStatus || current.Version() != expectedVersion {
		return nil, infra.WrapRepoErr("service request status changed since last read", nil, infra.KindStale)
	}

	updated := current.Advanced(plan.To, plan.ClaimedBy, now)
	s.requests[id] = updated
	return updated, nil
}

func (s *MemoryRequestStore) ListActive(
	_ context.Context,
	kind request.Kind,
	department staff.Department,
	requesterID *uuid.UUID,
) ([]*request.ServiceRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*request.ServiceRequest
	for _, req := range s.requests {
		if !req.IsActive() {
			continue
		}
		if kind != "" && req.Kind() != kind {
			continue
		}
		if !department.IsEmpty() && req.Department() != department {
			continue
		}
		if requesterID != nil && req.RequesterID() != *requesterID {
			continue
		}
		result = append(result, req)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt().Equal(result[j].CreatedAt()) {
			return result[i].CreatedAt().Before(result[j].CreatedAt())
		}
		return result[i].ID().String() < result[j].ID().String()
	})
	return result, nil
}
