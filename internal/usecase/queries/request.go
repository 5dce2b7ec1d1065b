package queries

import (
	"context"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/infra"
	"roomserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// RequestReadStore is the read side of the durable store.
type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*request.ServiceRequest, error)
	ListActive(ctx context.Context, kind request.Kind, department staff.Department, requesterID *uuid.UUID) ([]*request.ServiceRequest, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*request.ServiceRequest, error)
	// ListActive returns the non-terminal requests matching the filters for
	// initial dashboard hydration. Empty kind/department are wildcards; a
	// non-nil requesterID scopes the list to one guest's own requests.
	ListActive(ctx context.Context, kind request.Kind, department staff.Department, requesterID *uuid.UUID) ([]*request.ServiceRequest, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
}

func NewRequestQueries(store RequestReadStore) RequestQueries {
	return &requestQueriesImpl{store: store}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*request.ServiceRequest, error) {
	req, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return req, nil
}

func (q *requestQueriesImpl) ListActive(
	ctx context.Context,
	kind request.Kind,
	department staff.Department,
	requesterID *uuid.UUID,
) ([]*request.ServiceRequest, error) {
	result, err := q.store.ListActive(ctx, kind, department, requesterID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return result, nil
}
