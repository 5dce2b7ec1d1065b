package api

import (
	"errors"
	"net/http"

	"roomserve/internal/domain/request"
	"roomserve/internal/domain/staff"
	reqdto "roomserve/internal/handler/dto/request"
	resdto "roomserve/internal/handler/dto/response"
	"roomserve/internal/handler/httperr"
	"roomserve/internal/handler/middleware"
	"roomserve/internal/pkg/errs"
	"roomserve/internal/usecase/commands"
	"roomserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RequestHandler struct {
	cmds commands.RequestCommands
	q    queries.RequestQueries
}

func NewRequestHandler(cmds commands.RequestCommands, q queries.RequestQueries) *RequestHandler {
	return &RequestHandler{cmds: cmds, q: q}
}

// @Summary Create service request
// @Description Submit a new food or housekeeping request for a room
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateServiceRequestRequest true "Create service request"
// @Success 201 {object} resdto.ServiceRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests [post]
func (h *RequestHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrForbidden, "Unauthorized", nil)
		return
	}
	var req reqdto.CreateServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.CreateRequest(c.Request.Context(), req.ToParams(actor.ID))
	if err != nil {
		h.abortWithMappedError(c, err, "Create request failed")
		return
	}
	c.JSON(http.StatusCreated, resdto.FromServiceRequest(result))
}

// @Summary Get service request
// @Description Get a single service request by ID
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Success 200 {object} resdto.ServiceRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /requests/{id} [get]
func (h *RequestHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	result, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		h.abortWithMappedError(c, err, "Failed to load request")
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequest(result))
}

// @Summary List active service requests
// @Description List non-terminal requests, optionally filtered by kind and department. Guests only see their own requests.
// @Tags requests
// @Produce json
// @Security BearerAuth
// @Param kind query string false "Filter by kind (food or housekeeping)"
// @Param department query string false "Filter by department"
// @Success 200 {array} resdto.ServiceRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /requests [get]
func (h *RequestHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrForbidden, "Unauthorized", nil)
		return
	}

	kind := request.Kind(c.Query("kind"))
	if kind != "" && !kind.IsValid() {
		httperr.AbortWithError(c, http.StatusBadRequest, errs.ErrDomainValidation, "Unknown kind", nil)
		return
	}
	department := staff.Department(c.Query("department"))

	// Guests never see other rooms' requests.
	var requesterID *uuid.UUID
	if actor.Role == staff.RoleGuest {
		requesterID = &actor.ID
	}

	result, err := h.q.ListActive(c.Request.Context(), kind, department, requesterID)
	if err != nil {
		h.abortWithMappedError(c, err, "Failed to list requests")
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequestList(result))
}

// @Summary Advance service request status
// @Description Claim a pending request or advance an assigned request along its status chain
// @Tags requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Request ID"
// @Param request body reqdto.AdvanceServiceRequestRequest true "Requested status"
// @Success 200 {object} resdto.ServiceRequestResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) Advance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.ErrForbidden, "Unauthorized", nil)
		return
	}
	var req reqdto.AdvanceServiceRequestRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.cmds.ClaimOrAdvance(c.Request.Context(), id, request.Status(req.Status), actor, req.Version)
	if err != nil {
		h.abortWithMappedError(c, err, "Status change failed")
		return
	}
	c.JSON(http.StatusOK, resdto.FromServiceRequest(result))
}

func (h *RequestHandler) abortWithMappedError(c *gin.Context, err error, msg string) {
	var assigned *commands.AlreadyAssignedError
	switch {
	case errors.Is(err, errs.ErrRequestNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Request not found", nil)
	case errors.As(err, &assigned):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Request already taken",
			gin.H{"assignedTo": assigned.AssigneeID.String()})
	case errors.Is(err, errs.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not allowed to act on this request", nil)
	case errors.Is(err, errs.ErrStaleRequest):
		httperr.AbortWithError(c, http.StatusConflict, err, "Request was modified concurrently", nil)
	case errors.Is(err, errs.ErrInvalidTransition):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Invalid status transition", nil)
	case errors.Is(err, errs.ErrDomainValidation):
		httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, "Validation failed", nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
	}
}
