//go:build unit || e2e

package builder

import (
	"time"

	domrequest "roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	reqdto "roomserve/internal/handler/dto/request"
	"roomserve/internal/pkg/clock"

	"github.com/google/uuid"
)

type ServiceRequestBuilder struct {
	Kind        domrequest.Kind
	RoomNumber  string
	RequesterID uuid.UUID
	Department  staff.Department
	LineItems   []domrequest.LineItem
	Now         time.Time
}

func NewServiceRequestBuilder() *ServiceRequestBuilder {
	return &ServiceRequestBuilder{
		Kind:        domrequest.KindFood,
		RoomNumber:  "302",
		RequesterID: uuid.New(),
		Department:  "",
		LineItems: []domrequest.LineItem{
			{ServiceRef: "menu-club-sandwich", Name: "Club Sandwich", Quantity: 1, PriceCents: 1850},
			{ServiceRef: "menu-sparkling-water", Name: "Sparkling Water", Quantity: 2, PriceCents: 450},
		},
		Now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *ServiceRequestBuilder) With(mutate func(*ServiceRequestBuilder)) *ServiceRequestBuilder {
	mutate(b)
	return b
}

func (b *ServiceRequestBuilder) WithKind(kind domrequest.Kind) *ServiceRequestBuilder {
	b.Kind = kind
	return b
}

func (b *ServiceRequestBuilder) WithRoomNumber(room string) *ServiceRequestBuilder {
	b.RoomNumber = room
	return b
}

func (b *ServiceRequestBuilder) WithRequester(id uuid.UUID) *ServiceRequestBuilder {
	b.RequesterID = id
	return b
}

func (b *ServiceRequestBuilder) WithDepartment(dep staff.Department) *ServiceRequestBuilder {
	b.Department = dep
	return b
}

func (b *ServiceRequestBuilder) WithLineItems(items ...domrequest.LineItem) *ServiceRequestBuilder {
	b.LineItems = items
	return b
}

func (b *ServiceRequestBuilder) BuildDomain() (*domrequest.ServiceRequest, error) {
	return domrequest.NewServiceRequest(
		clock.NewMockClock(b.Now),
		b.Kind,
		b.RoomNumber,
		b.RequesterID,
		b.Department,
		b.LineItems,
	)
}

// BuildAt moves the request along its chain to the given status, claimed by
// the given assignee. Panics on impossible chains; builder misuse is a test
// bug, not a runtime condition.
func (b *ServiceRequestBuilder) BuildAt(status domrequest.Status, assignee uuid.UUID) *domrequest.ServiceRequest {
	req, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	now := b.Now
	for req.Status() != status {
		next, ok := domrequest.NextStatus(req.Kind(), req.Status())
		if !ok {
			panic("builder: status " + string(status) + " unreachable for kind " + string(req.Kind()))
		}
		now = now.Add(time.Minute)
		req = req.Advanced(next, &assignee, now)
	}
	return req
}

func (b *ServiceRequestBuilder) BuildCreateRequestDTO() reqdto.CreateServiceRequestRequest {
	items := make([]reqdto.LineItemRequest, len(b.LineItems))
	for i, li := range b.LineItems {
		items[i] = reqdto.LineItemRequest{
			ServiceRef:   li.ServiceRef,
			Name:         li.Name,
			Quantity:     li.Quantity,
			PriceCents:   li.PriceCents,
			Instructions: li.Instructions,
		}
	}
	return reqdto.CreateServiceRequestRequest{
		Kind:       string(b.Kind),
		RoomNumber: b.RoomNumber,
		Department: string(b.Department),
		LineItems:  items,
	}
}

type ActorBuilder struct {
	ID         uuid.UUID
	Department staff.Department
	Role       staff.Role
}

func NewActorBuilder() *ActorBuilder {
	return &ActorBuilder{
		ID:         uuid.New(),
		Department: staff.DepartmentKitchen,
		Role:       staff.RoleStaff,
	}
}

func (b *ActorBuilder) WithID(id uuid.UUID) *ActorBuilder {
	b.ID = id
	return b
}

func (b *ActorBuilder) WithDepartment(dep staff.Department) *ActorBuilder {
	b.Department = dep
	return b
}

func (b *ActorBuilder) WithRole(role staff.Role) *ActorBuilder {
	b.Role = role
	return b
}

func (b *ActorBuilder) Build() staff.Actor {
	return staff.Actor{
		ID:         b.ID,
		Department: b.Department,
		Role:       b.Role,
	}
}
