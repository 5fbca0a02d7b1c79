package handlers

import (
	"errors"

	"campus-assetdesk/internal/adapters/http/middleware"
	"campus-assetdesk/internal/core/services"
	"campus-assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequestHandler handles checkout request endpoints
type RequestHandler struct {
	requestService *services.RequestService
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requestService *services.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

func caller(c *fiber.Ctx) services.Caller {
	return services.Caller{
		UserID: middleware.CallerID(c),
		Role:   middleware.CallerRole(c),
	}
}

// CreateRequestBody represents request creation body
type CreateRequestBody struct {
	AssetID uint `json:"asset_id"`
}

// Create files a new checkout request
// @Summary Create request
// @Description File a checkout request for an asset on behalf of the caller
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateRequestBody true "Request data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests [post]
func (h *RequestHandler) Create(c *fiber.Ctx) error {
	var body CreateRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if body.AssetID == 0 {
		return response.BadRequest(c, "asset_id is required")
	}

	request, err := h.requestService.Create(c.Context(), caller(c), body.AssetID)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to create request")
	}
	return response.Created(c, "Request created", request)
}

// List lists requests visible to the caller
// @Summary List requests
// @Description Admins see all requests, students only their own
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /requests [get]
func (h *RequestHandler) List(c *fiber.Ctx) error {
	requests, err := h.requestService.List(c.Context(), caller(c))
	if err != nil {
		return response.InternalServerError(c, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved", requests)
}

// ListByStatus lists requests filtered by status
// @Summary List requests by status
// @Description Get requests with the given status, scoped to the caller
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status path string true "Request status" Enums(PENDING, APPROVED, REJECTED)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /requests/status/{status} [get]
func (h *RequestHandler) ListByStatus(c *fiber.Ctx) error {
	requests, err := h.requestService.ListByStatus(c.Context(), caller(c), c.Params("status"))
	if err != nil {
		if errors.Is(err, services.ErrRequestInvalidStatus) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved", requests)
}

// ListByUser lists requests for a specific user
// @Summary List requests by user
// @Description Get a user's requests; students may only query themselves
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /requests/user/{userId} [get]
func (h *RequestHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID")
	}

	requests, err := h.requestService.ListByUser(c.Context(), caller(c), userID)
	if err != nil {
		if errors.Is(err, services.ErrRequestNotOwner) {
			return response.Forbidden(c, "You can only view your own requests")
		}
		return response.InternalServerError(c, "Failed to list requests")
	}
	return response.Success(c, "Requests retrieved", requests)
}

// GetByID gets a single request
// @Summary Get request
// @Description Get a request by ID, visible to its owner or an admin
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [get]
func (h *RequestHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	request, err := h.requestService.GetByID(c.Context(), caller(c), id)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		case errors.Is(err, services.ErrRequestNotOwner):
			return response.Forbidden(c, "You can only view your own requests")
		default:
			return response.InternalServerError(c, "Failed to get request")
		}
	}
	return response.Success(c, "Request retrieved", request)
}

// UpdateStatusBody represents status update body
type UpdateStatusBody struct {
	Status   string `json:"status"`
	Comments string `json:"comments"`
}

// UpdateStatus moves a request to a new status
// @Summary Update request status
// @Description Approve or reject a request (admin only). Approval reserves the asset; at most one approved request may hold an asset.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Param body body UpdateStatusBody true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /requests/{id}/status [patch]
func (h *RequestHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	var body UpdateStatusBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	request, err := h.requestService.UpdateStatus(c.Context(), caller(c), id, body.Status, body.Comments)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminOnly):
			return response.Forbidden(c, "Only admins can change request status")
		case errors.Is(err, services.ErrRequestInvalidStatus):
			return response.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		case errors.Is(err, services.ErrAssetAlreadyReserved):
			return response.Conflict(c, "Asset already has an approved request")
		default:
			return response.InternalServerError(c, "Failed to update request")
		}
	}
	return response.Success(c, "Request status updated", request)
}

// Delete removes a request
// @Summary Delete request
// @Description Delete a request. Owners may withdraw their own; admins may delete any. Deleting an approved request frees the asset.
// @Tags Requests
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Request ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /requests/{id} [delete]
func (h *RequestHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid request ID")
	}

	if err := h.requestService.Delete(c.Context(), caller(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrRequestNotFound):
			return response.NotFound(c, "Request not found")
		case errors.Is(err, services.ErrRequestNotOwner):
			return response.Forbidden(c, "You can only delete your own requests")
		default:
			return response.InternalServerError(c, "Failed to delete request")
		}
	}
	return response.Success(c, "Request deleted", nil)
}
