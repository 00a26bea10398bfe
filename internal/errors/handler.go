package errors

import (
	"errors"
	"strings"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	paymePath = "/v1/payme"
	clickPath = "/v1/click"
)

// ErrorHandler renders errors that escaped a handler. Webhook routes always get
// a well-formed gateway payload with HTTP 200.
func ErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		path := c.Path()

		switch {
		case underRoute(path, paymePath):
			logger.Error("Unhandled Payme error", zap.Error(err))
			id, _ := c.Locals(constants.LocalsPaymeRequestID).(*int64)
			return c.Status(fiber.StatusOK).JSON(paycom.NewErrorResponse(id, paycom.ErrInternal))

		case underRoute(path, clickPath):
			logger.Error("Unhandled Click error", zap.Error(err))
			return c.Status(fiber.StatusOK).JSON(click.NewResponse(clickRequest(c), click.CodeFailedToUpdateUser))
		}

		var serviceErr service.Error
		if errors.As(err, &serviceErr) {
			return handleServiceError(c, serviceErr)
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(fiber.Map{
				"code":    fiberErr.Code,
				"message": fiberErr.Message,
			})
		}

		logger.Error("Unhandled error", zap.String("path", path), zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "Internal server error",
			"message": "Could not process the request",
		})
	}
}

// clickRequest returns the request the Click handler parsed, falling back to
// the raw form fields when the failure happened before parsing.
func clickRequest(c *fiber.Ctx) click.Request {
	if req, ok := c.Locals(constants.LocalsClickRequest).(click.Request); ok {
		return req
	}

	return click.Request{
		ClickTransID:    c.FormValue("click_trans_id"),
		MerchantTransID: c.FormValue("merchant_trans_id"),
		Action:          c.FormValue("action"),
	}
}

// underRoute reports whether path is route itself or one of its sub-paths.
func underRoute(path, route string) bool {
	return path == route || strings.HasPrefix(path, route+"/")
}

func handleServiceError(c *fiber.Ctx, err service.Error) error {
	return c.Status(constants.GetHTTPStatus(err.Code)).JSON(fiber.Map{
		"code":    err.Code,
		"message": constants.GetErrorMessage(err.Code),
	})
}
