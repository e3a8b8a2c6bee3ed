// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Luisr26/ExpertSoft/app/dto"
	businessflow "github.com/Luisr26/ExpertSoft/business_flow"
	"github.com/Luisr26/ExpertSoft/logger"
	"github.com/Luisr26/ExpertSoft/utils"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/rs/zerolog"
)

// baseHandler carries what every handler needs to decode requests and report failures
type baseHandler struct {
	validator *validator.Validate
	log       zerolog.Logger
}

func newBaseHandler(log zerolog.Logger) baseHandler {
	return baseHandler{
		validator: validator.New(),
		log:       log,
	}
}

func (h *baseHandler) ErrorResponse(c fiber.Ctx, statusCode int, message string, details []string) error {
	return c.Status(statusCode).JSON(dto.ErrorResponse{
		Status:   "error",
		Endpoint: c.OriginalURL(),
		Method:   c.Method(),
		Message:  message,
		Details:  details,
	})
}

// bind decodes the JSON body into req and validates it.
// It returns the problems to report, or nil when req is usable.
func (h *baseHandler) bind(c fiber.Ctx, req any) []string {
	if err := c.Bind().JSON(req); err != nil {
		return []string{"Invalid request body"}
	}
	if err := h.validator.Struct(req); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return []string{err.Error()}
		}
		var validationErrors []string
		for _, fe := range fieldErrors {
			validationErrors = append(validationErrors, getValidationErrorMessage(fe))
		}
		return validationErrors
	}
	return nil
}

// parseID reads a numeric :id route parameter. Ids that cannot exist are reported as not found.
func (h *baseHandler) parseID(c fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// flowError maps a business flow failure to a status code.
// Unexpected failures are logged and reported without details.
func (h *baseHandler) flowError(c fiber.Ctx, err error) error {
	message := "Internal server error"
	var be *businessflow.BusinessError
	if errors.As(err, &be) {
		message = be.Message
	}

	switch {
	case businessflow.IsNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, message, nil)
	case businessflow.IsInvalidReference(err), businessflow.IsInvalidValue(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, message, nil)
	case businessflow.IsAlreadyExists(err), businessflow.IsStillReferenced(err), businessflow.IsSeedInProgress(err):
		return h.ErrorResponse(c, fiber.StatusConflict, message, nil)
	}

	h.log.Error().
		Err(err).
		Str("request_id", requestid.FromContext(c)).
		Str("method", c.Method()).
		Str("endpoint", c.OriginalURL()).
		Msg("request failed")
	return h.ErrorResponse(c, fiber.StatusInternalServerError, "Internal server error", nil)
}

func (h *baseHandler) createRequestContext(c fiber.Ctx, endpoint string) (context.Context, context.CancelFunc) {
	return h.createRequestContextWithTimeout(c, endpoint, utils.RequestTimeout)
}

func (h *baseHandler) createRequestContextWithTimeout(c fiber.Ctx, endpoint string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	reqID := requestid.FromContext(c)
	ctx = context.WithValue(ctx, utils.RequestIDKey, reqID)
	ctx = context.WithValue(ctx, utils.UserAgentKey, c.Get("User-Agent"))
	ctx = context.WithValue(ctx, utils.IPAddressKey, c.IP())
	ctx = context.WithValue(ctx, utils.EndpointKey, endpoint)
	ctx = logger.WithContext(ctx, h.log.With().Str("request_id", reqID).Logger())
	return ctx, cancel
}

func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "min":
		return err.Field() + " must be at least " + err.Param() + " characters"
	case "max":
		return err.Field() + " must be at most " + err.Param() + " characters"
	case "numeric":
		return err.Field() + " must contain only numbers"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", err.Field(), err.Param())
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", err.Field(), err.Param())
	default:
		return err.Field() + " is invalid"
	}
}
