package handlers

import (
	"github.com/Luisr26/ExpertSoft/app/dto"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// PlatformHandlerInterface defines the contract for platform handlers
type PlatformHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// PlatformHandler handles platform-related HTTP requests
type PlatformHandler struct {
	baseHandler
	flow businessflow.PlatformFlow
}

func NewPlatformHandler(flow businessflow.PlatformFlow, log zerolog.Logger) *PlatformHandler {
	return &PlatformHandler{
		baseHandler: newBaseHandler(log),
		flow:        flow,
	}
}

// List Platforms
// @Summary List platforms
// @Tags Platforms
// @Produce json
// @Success 200 {array} models.Platform
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /platforms [get]
func (h *PlatformHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/platforms")
	defer cancel()

	items, err := h.flow.List(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(items)
}

// Get Platform
// @Summary Get a platform by id
// @Tags Platforms
// @Produce json
// @Param id path int true "Platform ID"
// @Success 200 {object} models.Platform
// @Failure 404 {object} dto.ErrorResponse "Platform not found"
// @Router /platforms/{id} [get]
func (h *PlatformHandler) Get(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "platform not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/platforms/:id")
	defer cancel()

	item, err := h.flow.Get(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Create Platform
// @Summary Create a platform
// @Tags Platforms
// @Accept json
// @Produce json
// @Param request body dto.PlatformRequest true "Platform"
// @Success 201 {object} models.Platform
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /platforms [post]
func (h *PlatformHandler) Create(c fiber.Ctx) error {
	var req dto.PlatformRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/platforms")
	defer cancel()

	item, err := h.flow.Create(ctx, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update Platform
// @Summary Replace a platform
// @Tags Platforms
// @Accept json
// @Produce json
// @Param id path int true "Platform ID"
// @Param request body dto.PlatformRequest true "Platform"
// @Success 200 {object} models.Platform
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Platform not found"
// @Router /platforms/{id} [put]
func (h *PlatformHandler) Update(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "platform not found", nil)
	}
	var req dto.PlatformRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/platforms/:id")
	defer cancel()

	item, err := h.flow.Update(ctx, id, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Delete Platform
// @Summary Delete a platform
// @Tags Platforms
// @Produce json
// @Param id path int true "Platform ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse "Platform not found"
// @Failure 409 {object} dto.ErrorResponse "Platform still referenced"
// @Router /platforms/{id} [delete]
func (h *PlatformHandler) Delete(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "platform not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/platforms/:id")
	defer cancel()

	res, err := h.flow.Delete(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(res)
}
