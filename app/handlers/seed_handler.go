package handlers

import (
	"bytes"
	"time"

	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SeedHandlerInterface defines the contract for the development seed endpoints
type SeedHandlerInterface interface {
	InitDB(c fiber.Ctx) error
	VerifyDB(c fiber.Ctx) error
}

// SeedHandler exposes database initialisation and verification
type SeedHandler struct {
	baseHandler
	flow    businessflow.SeedFlow
	timeout time.Duration
}

// NewSeedHandler creates a seed handler; timeout bounds a whole /init-db request
func NewSeedHandler(flow businessflow.SeedFlow, timeout time.Duration, log zerolog.Logger) *SeedHandler {
	return &SeedHandler{
		baseHandler: newBaseHandler(log),
		flow:        flow,
		timeout:     timeout,
	}
}

// Init DB
// @Summary Load the CSV seed sources into the database
// @Description Development only. Loads platforms, clients, invoices and transactions in that order.
// @Tags Seed
// @Produce json
// @Success 200 {object} seeder.Result
// @Failure 409 {object} dto.ErrorResponse "Initialization already in progress"
// @Failure 500 {object} dto.ErrorResponse "Initialization failed"
// @Router /init-db [post]
func (h *SeedHandler) InitDB(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContextWithTimeout(c, "/init-db", h.timeout)
	defer cancel()

	res, err := h.flow.InitDB(ctx)
	if err != nil {
		if businessflow.IsSeedInProgress(err) {
			return h.flowError(c, err)
		}
		h.log.Error().Err(err).Msg("database initialization failed")
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Database initialization failed", nil)
	}
	return c.JSON(res)
}

// Verify DB
// @Summary Report row counts and referenced rows
// @Description Development only. Pass format=xlsx to download the report as a workbook.
// @Tags Seed
// @Produce json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param format query string false "json (default) or xlsx"
// @Success 200 {object} seeder.Report
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /verify-db [get]
func (h *SeedHandler) VerifyDB(c fiber.Ctx) error {
	ctx, cancel := h.createRequestContext(c, "/verify-db")
	defer cancel()

	if c.Query("format") == "xlsx" {
		var buf bytes.Buffer
		if err := h.flow.VerifyWorkbook(ctx, &buf); err != nil {
			return h.flowError(c, err)
		}
		c.Set(fiber.HeaderContentType, xlsxContentType)
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="verification.xlsx"`)
		return c.Send(buf.Bytes())
	}

	report, err := h.flow.VerifyDB(ctx)
	if err != nil {
		return h.flowError(c, err)
	}
	return c.JSON(report)
}
