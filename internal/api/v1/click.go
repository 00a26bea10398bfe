package v1

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/click"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type clickCall func(ctx context.Context, req click.Request) click.Response

// Click serves both phases on one URL and routes by action.
func (h *Handler) Click(c *fiber.Ctx) error {
	return h.handleClick(c, h.click.Handle)
}

func (h *Handler) ClickPrepare(c *fiber.Ctx) error {
	return h.handleClick(c, h.click.Prepare)
}

func (h *Handler) ClickComplete(c *fiber.Ctx) error {
	return h.handleClick(c, h.click.Complete)
}

func (h *Handler) handleClick(c *fiber.Ctx, call clickCall) error {
	ctx := c.UserContext()

	var (
		request  click.Request
		response click.Response
	)

	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse Click request",
			zap.Error(err),
			zap.String("contentType", c.Get(fiber.HeaderContentType)))
		response = click.NewResponse(request, click.CodeBadRequest)
	} else if errs := h.XValidator.Validate(&request); len(errs) > 0 {
		h.logger.Warn("Invalid Click request",
			zap.String("field", errs[0].FailedField),
			zap.String("clickTransID", request.ClickTransID))
		response = click.NewResponse(request, click.CodeBadRequest)
	} else {
		c.Locals(constants.LocalsClickRequest, request)
		response = call(ctx, request)
	}

	method := clickMethod(request.Action)
	h.metrics.RecordWebhookCall(string(model.GatewayClick), method, response.Error)

	payload, err := json.Marshal(request)
	if err != nil {
		h.logger.Warn("Failed to encode Click request for webhook log",
			zap.String("clickTransID", request.ClickTransID),
			zap.Error(err))
	}
	h.logWebhook(ctx, model.GatewayClick, method, request.ClickTransID, payload, response.Error)

	return c.JSON(response)
}

func clickMethod(action string) string {
	switch action {
	case strconv.Itoa(click.ActionPrepare):
		return "prepare"
	case strconv.Itoa(click.ActionComplete):
		return "complete"
	default:
		return "unknown"
	}
}
