package commands

import (
	"context"
	"errors"

	"roomserve/internal/dispatch"
	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/infra"
	"roomserve/internal/pkg/clock"
	"roomserve/internal/pkg/errs"

	"github.com/google/uuid"
)

type RequestCommands interface {
	// CreateRequest registers a Pending request from intake data and
	// broadcasts RequestCreated.
	CreateRequest(ctx context.Context, params CreateRequestParams) (*request.ServiceRequest, error)

	// ClaimOrAdvance moves a request to the requested status on behalf of the
	// actor. From Pending this is the claim and fixes the assignee. A non-nil
	// observedVersion makes the caller's optimistic view part of the
	// precondition, so acting on an outdated snapshot fails with
	// errs.ErrStaleRequest instead of double-applying.
	ClaimOrAdvance(
		ctx context.Context,
		id uuid.UUID,
		requested request.Status,
		actor staff.Actor,
		observedVersion *int64,
	) (*request.ServiceRequest, error)
}

type requestCommandsImpl struct {
	store     RequestStore
	publisher EventPublisher
	clock     clock.Clock
}

func NewRequestCommands(store RequestStore, publisher EventPublisher, clk clock.Clock) RequestCommands {
	return &requestCommandsImpl{
		store:     store,
		publisher: publisher,
		clock:     clk,
	}
}

func (c *requestCommandsImpl) CreateRequest(ctx context.Context, params CreateRequestParams) (*request.ServiceRequest, error) {
	items := make([]request.LineItem, 0, len(params.LineItems))
	for _, p := range params.LineItems {
		li, err := request.NewLineItem(p.ServiceRef, p.Name, p.Quantity, p.PriceCents, p.Instructions)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrDomainValidation)
		}
		items = append(items, li)
	}

	req, err := request.NewServiceRequest(
		c.clock,
		params.Kind,
		params.RoomNumber,
		params.RequesterID,
		params.Department,
		items,
	)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	if err := c.store.Create(ctx, req); err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c.publisher.Publish(dispatch.NewEnvelope(dispatch.EventRequestCreated, req))
	return req, nil
}

func (c *requestCommandsImpl) ClaimOrAdvance(
	ctx context.Context,
	id uuid.UUID,
	requested request.Status,
	actor staff.Actor,
	observedVersion *int64,
) (*request.ServiceRequest, error) {
	current, err := c.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrRequestNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if observedVersion != nil && *observedVersion != current.Version() {
		return nil, errs.ErrStaleRequest
	}

	plan, err := current.PlanTransition(requested, actor)
	if err != nil {
		return nil, c.mapTransitionErr(err, current)
	}

	updated, err := c.store.CompareAndSwapStatus(ctx, id, current.Status(), current.Version(), plan, c.clock.Now())
	if err != nil {
		switch {
		case infra.IsKind(err, infra.KindStale):
			// Another actor won the race; the caller must re-read and decide.
			return nil, errs.Mark(err, errs.ErrStaleRequest)
		case infra.IsKind(err, infra.KindNotFound):
			return nil, errs.ErrRequestNotFound
		default:
			return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	c.publisher.Publish(dispatch.NewEnvelope(dispatch.EventRequestUpdated, updated))
	return updated, nil
}

func (c *requestCommandsImpl) mapTransitionErr(err error, current *request.ServiceRequest) error {
	switch {
	case errors.Is(err, request.ErrIllegalTransition):
		return errs.Mark(err, errs.ErrInvalidTransition)
	case errors.Is(err, request.ErrNotAssignee):
		if assignee := current.AssignedTo(); assignee != nil {
			return &AlreadyAssignedError{AssigneeID: *assignee}
		}
		return errs.Mark(err, errs.ErrForbidden)
	case errors.Is(err, request.ErrWrongDepartment):
		return errs.Mark(err, errs.ErrForbidden)
	default:
		return errs.Mark(err, errs.ErrInvalidTransition)
	}
}
