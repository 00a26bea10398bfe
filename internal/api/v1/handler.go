package v1

import (
	"context"
	"encoding/json"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/api/validator"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/metrics"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/repository"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type Handler struct {
	logger      *zap.Logger
	payme       service.PaymeService
	click       service.ClickService
	links       service.PaymentLinkService
	webhookLogs repository.WebhookLogRepository
	XValidator  validator.IXValidator
	metrics     *metrics.Metrics
	paymeCfg    config.Payme
	apiKey      string
}

func NewHandler(logger *zap.Logger, payme service.PaymeService, click service.ClickService, links service.PaymentLinkService,
	webhookLogs repository.WebhookLogRepository, XValidator validator.IXValidator, metrics *metrics.Metrics,
	cfg *config.Config) *Handler {
	return &Handler{
		logger:      logger,
		payme:       payme,
		click:       click,
		links:       links,
		webhookLogs: webhookLogs,
		XValidator:  XValidator,
		metrics:     metrics,
		paymeCfg:    cfg.Payme,
		apiKey:      cfg.API.Key,
	}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

// logWebhook stores the raw call. Failures are logged and otherwise ignored.
func (h *Handler) logWebhook(ctx context.Context, gateway model.Gateway, method, requestID string, payload []byte, code int) {
	entry := &model.WebhookLog{
		Gateway:   gateway,
		Method:    method,
		RequestID: requestID,
		Payload:   jsonPayload(payload),
		ErrorCode: code,
	}

	if err := h.webhookLogs.Create(ctx, entry); err != nil {
		h.logger.Warn("Failed to store webhook log",
			zap.String("gateway", string(gateway)),
			zap.String("method", method),
			zap.Error(err))
	}
}

func jsonPayload(body []byte) datatypes.JSON {
	if json.Valid(body) {
		return datatypes.JSON(body)
	}

	quoted, _ := json.Marshal(string(body))
	return datatypes.JSON(quoted)
}
