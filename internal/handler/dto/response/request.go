package response

import (
	"time"

	"roomserve/internal/domain/request"

	"github.com/google/uuid"
)

type ServiceRequestResponse struct {
	ID          uuid.UUID          `json:"id"`
	Kind        string             `json:"kind"`
	RoomNumber  string             `json:"roomNumber"`
	RequesterID uuid.UUID          `json:"requesterId"`
	Department  string             `json:"department"`
	LineItems   []LineItemResponse `json:"lineItems"`
	TotalCents  int64              `json:"totalAmountCents"`
	Status      string             `json:"status"`
	AssignedTo  *uuid.UUID         `json:"assignedTo"`
	Version     int64              `json:"version"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

type LineItemResponse struct {
	ServiceRef   string `json:"serviceRef"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	PriceCents   int64  `json:"priceAtOrderCents"`
	Instructions string `json:"instructions,omitempty"`
}

func FromServiceRequest(req *request.ServiceRequest) *ServiceRequestResponse {
	domainItems := req.LineItems()
	items := make([]LineItemResponse, len(domainItems))
	for i, li := range domainItems {
		items[i] = LineItemResponse{
			ServiceRef:   li.ServiceRef,
			Name:         li.Name,
			Quantity:     li.Quantity,
			PriceCents:   li.PriceCents,
			Instructions: li.Instructions,
		}
	}

	return &ServiceRequestResponse{
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

func FromServiceRequestList(reqs []*request.ServiceRequest) []*ServiceRequestResponse {
	result := make([]*ServiceRequestResponse, len(reqs))
	for i, req := range reqs {
		result[i] = FromServiceRequest(req)
	}
	return result
}
