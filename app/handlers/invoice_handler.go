package handlers

import (
	"github.com/Luisr26/ExpertSoft/app/dto"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// InvoiceHandlerInterface defines the contract for invoice handlers
type InvoiceHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	baseHandler
	flow businessflow.InvoiceFlow
}

func NewInvoiceHandler(flow businessflow.InvoiceFlow, log zerolog.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		baseHandler: newBaseHandler(log),
		flow:        flow,
	}
}

// List Invoices
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Success 200 {array} models.Invoice
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /invoices [get]
func (h *InvoiceHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/invoices")
	defer cancel()

	items, err := h.flow.List(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(items)
}

// Get Invoice
// @Summary Get an invoice by id
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} models.Invoice
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "invoice not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/invoices/:id")
	defer cancel()

	item, err := h.flow.Get(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Create Invoice
// @Summary Create an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param request body dto.InvoiceRequest true "Invoice"
// @Success 201 {object} models.Invoice
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c fiber.Ctx) error {
	var req dto.InvoiceRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/invoices")
	defer cancel()

	item, err := h.flow.Create(ctx, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update Invoice
// @Summary Replace an invoice
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path int true "Invoice ID"
// @Param request body dto.InvoiceRequest true "Invoice"
// @Success 200 {object} models.Invoice
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "invoice not found", nil)
	}
	var req dto.InvoiceRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/invoices/:id")
	defer cancel()

	item, err := h.flow.Update(ctx, id, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Delete Invoice
// @Summary Delete an invoice
// @Tags Invoices
// @Produce json
// @Param id path int true "Invoice ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse "Invoice not found"
// @Failure 409 {object} dto.ErrorResponse "Invoice still referenced"
// @Router /invoices/{id} [delete]
func (h *InvoiceHandler) Delete(c fiber.Ctx) error {
	id, ok := h.parseID(c)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusNotFound, "invoice not found", nil)
	}
	ctx, cancel := h.createRequestContext(c, "/invoices/:id")
	defer cancel()

	res, err := h.flow.Delete(ctx, id)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(res)
}
