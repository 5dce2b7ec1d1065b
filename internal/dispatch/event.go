package dispatch

import (
	"time"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"

	"github.com/google/uuid"
)

type EventType string

const (
	EventRequestCreated EventType = "RequestCreated"
	EventRequestUpdated EventType = "RequestUpdated"
)

// LineItem mirrors the domain value object with a stable wire schema.
type LineItem struct {
	ServiceRef   string `json:"serviceRef"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"priceAtOrderCents"`
	Instructions string `json:"instructions,omitempty"`
}

// Snapshot is the full current state of a service request, not a delta.
// Clients apply snapshots by id and ignore any whose version is older than
// what they already hold.
type Snapshot struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	RoomNumber  string     `json:"roomNumber"`
	RequesterID uuid.UUID  `json:"requesterId"`
	Department  string     `json:"department"`
	LineItems   []LineItem `json:"lineItems"`
	TotalCents  int64      `json:"totalAmountCents"`
	Status      string     `json:"status"`
	AssignedTo  *uuid.UUID `json:"assignedTo"`
	Version     int64      `json:"version"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// Envelope is the typed event published for every accepted creation or
// transition, decoupling the dispatch logic from the transport.
type Envelope struct {
	EventType  EventType `json:"eventType"`
	Kind       string    `json:"kind"`
	Department string    `json:"department"`
	Record     Snapshot  `json:"record"`
}

func NewEnvelope(eventType EventType, req *request.ServiceRequest) Envelope {
	return Envelope{
		EventType:  eventType,
		Kind:       req.Kind().String(),
		Department: req.Department().String(),
		Record:     SnapshotFrom(req),
	}
}

func SnapshotFrom(req *request.ServiceRequest) Snapshot {
	domainItems := req.LineItems()
	items := make([]LineItem, len(domainItems))
	for i, li := range domainItems {
		items[i] = LineItem{
			ServiceRef:   li.ServiceRef,
			Name:         li.Name,
			Quantity:     li.Quantity,
			PriceCents:   li.PriceCents,
			Instructions: li.Instructions,
		}
	}

	return Snapshot{
		ID:          req.ID(),
		Kind:        req.Kind().String(),
		RoomNumber:  req.RoomNumber(),
		RequesterID: req.RequesterID(),
		Department:  req.Department().String(),
		LineItems:   items,
		TotalCents:  req.TotalCents(),
		Status:      req.Status().String(),
		AssignedTo:  req.AssignedTo(),
		Version:     req.Version(),
		CreatedAt:   req.CreatedAt(),
		UpdatedAt:   req.UpdatedAt(),
	}
}

// Filter selects which events a dashboard session receives. Empty components
// are wildcards.
type Filter struct {
	Kind       request.Kind
	Department staff.Department
}

func (f Filter) Matches(env Envelope) bool {
	if f.Kind != "" && f.Kind.String() != env.Kind {
		return false
	}
	if !f.Department.IsEmpty() && f.Department.String() != env.Department {
		return false
	}
	return true
}
