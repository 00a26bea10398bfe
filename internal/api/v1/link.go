package v1

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/api/contract"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const apiKeyHeader = "X-API-Key"

func (h *Handler) CreatePaymentLink(c *fiber.Ctx) error {
	if h.apiKey != "" && subtle.ConstantTimeCompare([]byte(c.Get(apiKeyHeader)), []byte(h.apiKey)) != 1 {
		h.logger.Warn("Payment link request with invalid API key", zap.String("ip", c.IP()))
		return service.NewServiceError(constants.ErrCodeUnauthorized, service.ErrUnauthorized)
	}

	var request CreatePaymentLinkRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body", zap.Error(err), zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInvalidRequestBody,
			Message: constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	if errs := h.XValidator.Validate(&request); len(errs) > 0 {
		fields := make([]string, 0, len(errs))
		for _, e := range errs {
			fields = append(fields, fmt.Sprintf("field %s is invalid", e.FailedField))
		}
		h.logger.Error("Error Validator", zap.Any("request", request))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(contract.ResponseError{
			Code:    constants.ErrCodeInvalidParams,
			Message: strings.Join(fields, " and "),
		})
	}

	amount := decimal.Zero
	if request.Amount != "" {
		parsed, err := decimal.NewFromString(request.Amount)
		if err != nil {
			return service.NewServiceError(constants.ErrCodeInvalidAmount, service.ErrInvalidAmount)
		}
		amount = parsed
	}

	link, err := h.links.CreateLink(c.UserContext(), service.CreatePaymentLinkCommand{
		Gateway:   model.Gateway(request.Gateway),
		OrderKey:  request.OrderID,
		Amount:    amount,
		ReturnURL: request.ReturnURL,
	})
	if err != nil {
		h.logger.Warn("Failed to create payment link",
			zap.String("gateway", request.Gateway),
			zap.String("orderID", request.OrderID),
			zap.Error(err))
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(contract.Response{Successful: true, Code: "success", Result: link})
}
