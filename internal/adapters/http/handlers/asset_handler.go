package handlers

import (
	"errors"
	"strconv"

	"campus-assetdesk/internal/core/services"
	"campus-assetdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AssetHandler handles asset catalog endpoints
type AssetHandler struct {
	assetService *services.AssetService
}

// NewAssetHandler creates a new asset handler
func NewAssetHandler(assetService *services.AssetService) *AssetHandler {
	return &AssetHandler{assetService: assetService}
}

// List lists all assets
// @Summary List assets
// @Description Get all assets in the catalog
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	assets, err := h.assetService.List(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list assets")
	}
	return response.Success(c, "Assets retrieved", assets)
}

// ListByStatus lists assets filtered by status
// @Summary List assets by status
// @Description Get assets with the given status
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param status path string true "Asset status" Enums(AVAILABLE, RESERVED, MAINTENANCE)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /assets/status/{status} [get]
func (h *AssetHandler) ListByStatus(c *fiber.Ctx) error {
	assets, err := h.assetService.ListByStatus(c.Context(), c.Params("status"))
	if err != nil {
		if errors.Is(err, services.ErrAssetInvalidStatus) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to list assets")
	}
	return response.Success(c, "Assets retrieved", assets)
}

// GetByID gets a single asset
// @Summary Get asset
// @Description Get an asset by ID
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [get]
func (h *AssetHandler) GetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	asset, err := h.assetService.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrAssetNotFound) {
			return response.NotFound(c, "Asset not found")
		}
		return response.InternalServerError(c, "Failed to get asset")
	}
	return response.Success(c, "Asset retrieved", asset)
}

// Create creates a new asset
// @Summary Create asset
// @Description Add a new asset to the catalog (admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AssetInput true "Asset data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /assets [post]
func (h *AssetHandler) Create(c *fiber.Ctx) error {
	var input services.AssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.Create(c.Context(), &input)
	if err != nil {
		if isAssetValidationErr(err) {
			return response.BadRequest(c, err.Error())
		}
		return response.InternalServerError(c, "Failed to create asset")
	}
	return response.Created(c, "Asset created", asset)
}

// Update replaces an asset
// @Summary Update asset
// @Description Replace an asset's name, description and status (admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Param body body services.AssetInput true "Asset data"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	var input services.AssetInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	asset, err := h.assetService.Update(c.Context(), id, &input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case isAssetValidationErr(err):
			return response.BadRequest(c, err.Error())
		default:
			return response.InternalServerError(c, "Failed to update asset")
		}
	}
	return response.Success(c, "Asset updated", asset)
}

// Delete removes an asset
// @Summary Delete asset
// @Description Delete an asset with no remaining requests (admin only)
// @Tags Assets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Asset ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid asset ID")
	}

	if err := h.assetService.Delete(c.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrAssetNotFound):
			return response.NotFound(c, "Asset not found")
		case errors.Is(err, services.ErrAssetHasRequests):
			return response.Conflict(c, "Asset has existing requests and cannot be deleted")
		default:
			return response.InternalServerError(c, "Failed to delete asset")
		}
	}
	return response.Success(c, "Asset deleted", nil)
}

func isAssetValidationErr(err error) bool {
	return errors.Is(err, services.ErrAssetNameRequired) ||
		errors.Is(err, services.ErrAssetDescRequired) ||
		errors.Is(err, services.ErrAssetInvalidStatus)
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.ErrBadRequest
	}
	return uint(id), nil
}
