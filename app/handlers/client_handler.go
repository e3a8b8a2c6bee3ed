package handlers

import (
	"github.com/Luisr26/ExpertSoft/app/dto"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// ClientHandlerInterface defines the contract for client handlers
type ClientHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
	ListTransactions(c fiber.Ctx) error
}

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	baseHandler
	flow businessflow.ClientFlow
}

func NewClientHandler(flow businessflow.ClientFlow, log zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		baseHandler: newBaseHandler(log),
		flow:        flow,
	}
}

// List Clients
// @Summary List clients
// @Tags Clients
// @Produce json
// @Success 200 {array} models.Client
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /clients [get]
func (h *ClientHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/clients")
	defer cancel()

	items, err := h.flow.List(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(items)
}

// Get Client
// @Summary Get a client by id
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} models.Client
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "client not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/clients/:id")
	defer cancel()

	item, err := h.flow.Get(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Create Client
// @Summary Create a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param request body dto.ClientRequest true "Client"
// @Success 201 {object} models.Client
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /clients [post]
func (h *ClientHandler) Create(c fiber.Ctx) error {
	var req dto.ClientRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/clients")
	defer cancel()

	item, err := h.flow.Create(ctx, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update Client
// @Summary Replace a client
// @Tags Clients
// @Accept json
// @Produce json
// @Param id path int true "Client ID"
// @Param request body dto.ClientRequest true "Client"
// @Success 200 {object} models.Client
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "client not found", nil)
	}
	var req dto.ClientRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/clients/:id")
	defer cancel()

	item, err := h.flow.Update(ctx, id, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Delete Client
// @Summary Delete a client
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Failure 409 {object} dto.ErrorResponse "Client still referenced"
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "client not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/clients/:id")
	defer cancel()

	res, err := h.flow.Delete(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(res)
}

// List Client Transactions
// @Summary List the transactions of a client, newest first
// @Tags Clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {array} models.TransactionDetail
// @Failure 404 {object} dto.ErrorResponse "Client not found"
// @Router /clients/{id}/transactions [get]
func (h *ClientHandler) ListTransactions(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "client not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/clients/:id/transactions")
	defer cancel()

	items, err := h.flow.ListTransactions(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(items)
}
