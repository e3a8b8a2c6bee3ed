package handlers

import (
	"strings"

	"github.com/Luisr26/ExpertSoft/app/dto"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// TransactionHandlerInterface defines the contract for transaction handlers
type TransactionHandlerInterface interface {
	List(c fiber.Ctx) error
	Get(c fiber.Ctx) error
	Create(c fiber.Ctx) error
	Update(c fiber.Ctx) error
	Delete(c fiber.Ctx) error
}

// TransactionHandler handles transaction-related HTTP requests.
// Transaction ids are opaque strings chosen by the caller.
type TransactionHandler struct {
	baseHandler
	flow businessflow.TransactionFlow
}

func NewTransactionHandler(flow businessflow.TransactionFlow, log zerolog.Logger) *TransactionHandler {
	return &TransactionHandler{
		baseHandler: newBaseHandler(log),
		flow:        flow,
	}
}

// List Transactions
// @Summary List transactions joined with client, platform and invoice, newest first
// @Tags Transactions
// @Produce json
// @Success 200 {array} models.TransactionDetail
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /transactions [get]
func (h *TransactionHandler) List(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/transactions")
	defer cancel()

	items, err := h.flow.List(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(items)
}

// Get Transaction
// @Summary Get a transaction with its client, platform and invoice
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} models.TransactionDetail
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [get]
func (h *TransactionHandler) Get(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/transactions/:id")
	defer cancel()

	item, err := h.flow.Get(ctx, h.transactionID(c))
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Create Transaction
// @Summary Create a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param request body dto.CreateTransactionRequest true "Transaction"
// @Success 201 {object} models.Transaction
// @Failure 400 {object} dto.ErrorResponse "Validation error or unknown client, platform or invoice"
// @Failure 409 {object} dto.ErrorResponse "Transaction already exists"
// @Router /transactions [post]
func (h *TransactionHandler) Create(c fiber.Ctx) error {
	var req dto.CreateTransactionRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/transactions")
	defer cancel()

	item, err := h.flow.Create(ctx, &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// Update Transaction
// @Summary Replace a transaction
// @Tags Transactions
// @Accept json
// @Produce json
// @Param id path string true "Transaction ID"
// @Param request body dto.TransactionRequest true "Transaction"
// @Success 200 {object} models.Transaction
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [put]
func (h *TransactionHandler) Update(c fiber.Ctx) error {
	var req dto.TransactionRequest
	if problems := h.bind(c, &req); problems != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", problems)
	}
	ctx, cancel := h.createRequestContext(c, "/transactions/:id")
	defer cancel()

	item, err := h.flow.Update(ctx, h.transactionID(c), &req)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(item)
}

// Delete Transaction
// @Summary Delete a transaction
// @Tags Transactions
// @Produce json
// @Param id path string true "Transaction ID"
// @Success 200 {object} dto.DeleteResponse
// @Failure 404 {object} dto.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [delete]
func (h *TransactionHandler) Delete(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/transactions/:id")
	defer cancel()

	res, err := h.flow.Delete(ctx, h.transactionID(c))
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(res)
}

func (h *TransactionHandler) transactionID(c fiber.Ctx) string {
	return strings.TrimSpace(c.Params("id"))
}
