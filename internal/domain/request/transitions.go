package request

import (
	"errors"

	"roomserve/internal/domain/staff"

	"github.com/google/uuid"
)

var (
	ErrIllegalTransition = errors.New("requested status is not the legal successor")
	ErrWrongDepartment   = errors.New("actor does not belong to the request's department")
	ErrNotAssignee       = errors.New("only the assigned actor may advance this request")
)

// Plan is an accepted transition, ready to be applied through the store's
// atomic primitive. ClaimedBy is set only when the transition is the claim.
type Plan struct {
	From      Status
	To        Status
	ClaimedBy *uuid.UUID
}

// IsClaim reports whether applying the plan fixes the request's assignee.
func (p Plan) IsClaim() bool {
	return p.ClaimedBy != nil
}

// PlanTransition decides whether the actor may move the request to the
// requested status. Rules:
//   - requested must be the immediate successor in the kind's chain, or
//     Cancelled from any non-terminal status;
//   - from Pending, any actor of the request's department may transition;
//     that transition is the claim and fixes the assignee (a cancellation
//     from Pending leaves the request unassigned);
//   - past Pending, only the current assignee may transition.
//
// The plan carries no side effects; callers apply it via compare-and-set so
// that a concurrent winner surfaces as a stale write, never an overwrite.
func (r *ServiceRequest) PlanTransition(requested Status, actor staff.Actor) (Plan, error) {
	if !requested.IsValid() || r.status.IsTerminal() {
		return Plan{}, ErrIllegalTransition
	}

	if requested == StatusCancelled {
		if err := r.authorize(actor); err != nil {
			return Plan{}, err
		}
		return Plan{From: r.status, To: StatusCancelled}, nil
	}

	next, ok := NextStatus(r.kind, r.status)
	if !ok || requested != next {
		return Plan{}, ErrIllegalTransition
	}

	if err := r.authorize(actor); err != nil {
		return Plan{}, err
	}

	plan := Plan{From: r.status, To: requested}
	if r.status == StatusPending {
		id := actor.ID
		plan.ClaimedBy = &id
	}
	return plan, nil
}

func (r *ServiceRequest) authorize(actor staff.Actor) error {
	if r.status == StatusPending {
		if actor.Department != r.department {
			return ErrWrongDepartment
		}
		return nil
	}
	if r.assignedTo == nil || *r.assignedTo != actor.ID {
		return ErrNotAssignee
	}
	return nil
}
