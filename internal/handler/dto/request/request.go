package request

import (
	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	"roomserve/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateServiceRequestRequest struct {
	Kind       string            `json:"kind" binding:"required,oneof=food housekeeping"`
	RoomNumber string            `json:"roomNumber" binding:"required"`
	Department string            `json:"department"` // optional routing key; defaults to the kind's home department
	LineItems  []LineItemRequest `json:"lineItems" binding:"required,min=1,dive"`
}

type LineItemRequest struct {
	ServiceRef   string `json:"serviceRef"`
	Name         string `json:"name" binding:"required"`
	Quantity     int    `json:"quantity" binding:"required,min=1"`
	PriceCents   int64  `json:"priceAtOrderCents" binding:"min=0"`
	Instructions string `json:"instructions" binding:"max=500"`
}

func (r CreateServiceRequestRequest) ToParams(requesterID uuid.UUID) commands.CreateRequestParams {
	items := make([]commands.LineItemParams, len(r.LineItems))
	for i, li := range r.LineItems {
		items[i] = commands.LineItemParams{
			ServiceRef:   li.ServiceRef,
			Name:         li.Name,
			Quantity:     li.Quantity,
			PriceCents:   li.PriceCents,
			Instructions: li.Instructions,
		}
	}
	return commands.CreateRequestParams{
		Kind:        request.Kind(r.Kind),
		RoomNumber:  r.RoomNumber,
		RequesterID: requesterID,
		Department:  staff.Department(r.Department),
		LineItems:   items,
	}
}

// AdvanceServiceRequestRequest carries the requested next status and the
// caller's observed version for optimistic concurrency. Omitting the version
// skips the client-side staleness check; the store's compare-and-set still
// guarantees a single winner.
type AdvanceServiceRequestRequest struct {
	Status  string `json:"status" binding:"required,oneof=preparing in_progress delivered completed cancelled"`
	Version *int64 `json:"version"`
}
