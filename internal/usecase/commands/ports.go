package commands

import (
	"context"
	"fmt"
	"time"

	"roomserve/internal/dispatch"
	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/pkg/errs"

	"github.com/google/uuid"
)

// RequestStore is the durable store for service requests. CompareAndSwapStatus
// is the only mutation path: a single conditional write, never a held lock,
// never a blind overwrite.
type RequestStore interface {
	Create(ctx context.Context, req *request.ServiceRequest) error
	FindByID(ctx context.Context, id uuid.UUID) (*request.ServiceRequest, error)
	CompareAndSwapStatus(
		ctx context.Context,
		id uuid.UUID,
		expectedStatus request.Status,
		expectedVersion int64,
		plan request.Plan,
		now time.Time,
	) (*request.ServiceRequest, error)
}

// EventPublisher receives every accepted state change. Implementations must
// not fail the originating write; delivery problems are theirs to log.
type EventPublisher interface {
	Publish(env dispatch.Envelope)
}

type CreateRequestParams struct {
	Kind        request.Kind
	RoomNumber  string
	RequesterID uuid.UUID
	Department  staff.Department
	LineItems   []LineItemParams
}

type LineItemParams struct {
	ServiceRef   string
	Name         string
	Quantity     int
	PriceCents   int64
	Instructions string
}

// AlreadyAssignedError reports who holds the claim so a staff client sees
// "already taken by X" instead of a generic permission error. It matches
// errs.ErrForbidden under errors.Is.
type AlreadyAssignedError struct {
	AssigneeID uuid.UUID
}

func (e *AlreadyAssignedError) Error() string {
	return fmt.Sprintf("request already taken by %s", e.AssigneeID)
}

func (e *AlreadyAssignedError) Is(target error) bool {
	return target == errs.ErrForbidden
}
