package api

import (
	v1 "github.com/komiljonov/Fitrat-ERP-sub000/internal/api/v1"
	"github.com/gofiber/fiber/v2"
)

const prefixV1 = "/v1/"

// SetupRoutes registers the webhook and payment link endpoints. Operational
// endpoints are registered by SetupOpsRoutes.
func SetupRoutes(app *fiber.App, handler *v1.Handler) {
	app.Get("/ping", handler.Pong)
	app.Post(prefixV1+"payme", handler.Payme)
	app.Post(prefixV1+"click", handler.Click)
	app.Post(prefixV1+"click/prepare", handler.ClickPrepare)
	app.Post(prefixV1+"click/complete", handler.ClickComplete)
	app.Post(prefixV1+"payments/link", handler.CreatePaymentLink)
}

func SetupOpsRoutes(app *fiber.App, health fiber.Handler, metrics fiber.Handler) {
	app.Get("/health", health)
	app.Get("/metrics", metrics)
}
