package request

import (
	"errors"
	"time"

	"roomserve/internal/domain/staff"
	"roomserve/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrUnknownKind      = errors.New("unknown request kind")
	ErrNoLineItems      = errors.New("request must have at least one line item")
	ErrInvalidQuantity  = errors.New("line item quantity must be at least 1")
	ErrNegativePrice    = errors.New("line item price cannot be negative")
	ErrEmptyRoomNumber  = errors.New("room number cannot be empty")
	ErrMissingRequester = errors.New("requester cannot be empty")
)

// LineItem is write-once: fixed when the request is created, never edited
// mid-flight.
type LineItem struct {
	ServiceRef   string
	Name         string
	Quantity     int
	PriceCents   int64
	Instructions string
}

func NewLineItem(serviceRef, name string, quantity int, priceCents int64, instructions string) (LineItem, error) {
	if quantity < 1 {
		return LineItem{}, ErrInvalidQuantity
	}
	if priceCents < 0 {
		return LineItem{}, ErrNegativePrice
	}
	return LineItem{
		ServiceRef:   serviceRef,
		Name:         name,
		Quantity:     quantity,
		PriceCents:   priceCents,
		Instructions: instructions,
	}, nil
}

func (li LineItem) SubtotalCents() int64 {
	return int64(li.Quantity) * li.PriceCents
}

type ServiceRequest struct {
	id          uuid.UUID
	kind        Kind
	roomNumber  string
	requesterID uuid.UUID
	department  staff.Department
	lineItems   []LineItem
	totalCents  int64
	status      Status
	assignedTo  *uuid.UUID
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewServiceRequest builds a Pending request from intake data. The total is
// computed here once and never recomputed. An empty department falls back to
// the kind's home department.
func NewServiceRequest(
	clk clock.Clock,
	kind Kind,
	roomNumber string,
	requesterID uuid.UUID,
	department staff.Department,
	items []LineItem,
) (*ServiceRequest, error) {
	if !kind.IsValid() {
		return nil, ErrUnknownKind
	}
	if roomNumber == "" {
		return nil, ErrEmptyRoomNumber
	}
	if requesterID == uuid.Nil {
		return nil, ErrMissingRequester
	}
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}

	var total int64
	for _, li := range items {
		if li.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		if li.PriceCents < 0 {
			return nil, ErrNegativePrice
		}
		total += li.SubtotalCents()
	}

	if department.IsEmpty() {
		department = DepartmentFor(kind)
	}

	now := clk.Now()
	return &ServiceRequest{
		id:          uuid.New(),
		kind:        kind,
		roomNumber:  roomNumber,
		requesterID: requesterID,
		department:  department,
		lineItems:   append([]LineItem(nil), items...),
		totalCents:  total,
		status:      StatusPending,
		assignedTo:  nil,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructServiceRequest(
	id uuid.UUID,
	kind Kind,
	roomNumber string,
	requesterID uuid.UUID,
	department staff.Department,
	lineItems []LineItem,
	totalCents int64,
	status Status,
	assignedTo *uuid.UUID,
	version int64,
	createdAt, updatedAt time.Time,
) *ServiceRequest {
	return &ServiceRequest{
		id:          id,
		kind:        kind,
		roomNumber:  roomNumber,
		requesterID: requesterID,
		department:  department,
		lineItems:   lineItems,
		totalCents:  totalCents,
		status:      status,
		assignedTo:  assignedTo,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Advanced returns a copy with the transition applied: new status, bumped
// version and updatedAt, and the assignee fixed when the transition is the
// claim. The receiver is never mutated.
func (r *ServiceRequest) Advanced(to Status, claimedBy *uuid.UUID, now time.Time) *ServiceRequest {
	next := *r
	next.status = to
	if next.assignedTo == nil && claimedBy != nil {
		id := *claimedBy
		next.assignedTo = &id
	}
	next.version = r.version + 1
	next.updatedAt = now
	return &next
}

func (r *ServiceRequest) IsActive() bool {
	return !r.status.IsTerminal()
}

func (r *ServiceRequest) ID() uuid.UUID                { return r.id }
func (r *ServiceRequest) Kind() Kind                   { return r.kind }
func (r *ServiceRequest) RoomNumber() string           { return r.roomNumber }
func (r *ServiceRequest) RequesterID() uuid.UUID       { return r.requesterID }
func (r *ServiceRequest) Department() staff.Department { return r.department }
func (r *ServiceRequest) TotalCents() int64            { return r.totalCents }
func (r *ServiceRequest) Status() Status               { return r.status }
func (r *ServiceRequest) AssignedTo() *uuid.UUID       { return r.assignedTo }
func (r *ServiceRequest) Version() int64               { return r.version }
func (r *ServiceRequest) CreatedAt() time.Time         { return r.createdAt }
func (r *ServiceRequest) UpdatedAt() time.Time         { return r.updatedAt }

func (r *ServiceRequest) LineItems() []LineItem {
	return append([]LineItem(nil), r.lineItems...)
}
