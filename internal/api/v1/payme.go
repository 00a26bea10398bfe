package v1

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/constants"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/model"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/paycom"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// paymeMethod receives the envelope id alongside the params. Only CreateTransaction stores it.
type paymeMethod func(h *Handler, ctx context.Context, id *int64, params json.RawMessage) (any, error)

// paymeMethods is the merchant API routing table. It is never mutated after init.
var paymeMethods = map[string]paymeMethod{
	paycom.MethodCheckPerformTransaction: (*Handler).checkPerformTransaction,
	paycom.MethodCreateTransaction:       (*Handler).createTransaction,
	paycom.MethodPerformTransaction:      (*Handler).performTransaction,
	paycom.MethodCheckTransaction:        (*Handler).checkTransaction,
	paycom.MethodCancelTransaction:       (*Handler).cancelTransaction,
	paycom.MethodGetStatement:            (*Handler).getStatement,
}

var errMissingAccount = errors.New("account key missing")

// Payme serves the JSON-RPC merchant API. Every reply is HTTP 200.
func (h *Handler) Payme(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if !paycom.Authorized(c.Get(fiber.HeaderAuthorization), h.paymeCfg.Key, h.paymeCfg.TestKey) {
		h.logger.Warn("Payme authorization failed", zap.String("ip", c.IP()))
		h.metrics.RecordWebhookCall(string(model.GatewayPayme), "unauthorized", paycom.CodeInsufficientRights)
		return c.JSON(paycom.NewErrorResponse(nil, paycom.ErrInsufficientRights))
	}

	body := c.Body()

	var request paycom.Request
	if err := json.Unmarshal(body, &request); err != nil {
		h.logger.Warn("Failed to parse Payme request", zap.Error(err), zap.ByteString("body", body))
		return h.paymeFailure(c, request, body, paycom.ErrParse)
	}

	c.Locals(constants.LocalsPaymeRequestID, request.ID)

	if request.Method == "" {
		return h.paymeFailure(c, request, body, paycom.ErrInvalidRequest)
	}

	method, ok := paymeMethods[request.Method]
	if !ok {
		h.logger.Warn("Unknown Payme method", zap.String("method", request.Method))
		return h.paymeFailure(c, request, body, paycom.ErrMethodNotFound)
	}

	result, err := method(h, ctx, request.ID, request.Params)
	if err != nil {
		rpcErr := service.PaymeError(err, h.paymeCfg.AccountKey)
		if rpcErr.Code == paycom.CodeInternal {
			h.logger.Error("Payme method failed", zap.String("method", request.Method), zap.Error(err))
		}
		return h.paymeFailure(c, request, body, rpcErr)
	}

	h.metrics.RecordWebhookCall(string(model.GatewayPayme), request.Method, 0)
	h.logWebhook(ctx, model.GatewayPayme, request.Method, requestID(request.ID), body, 0)

	return c.JSON(paycom.NewResponse(request.ID, result))
}

func (h *Handler) paymeFailure(c *fiber.Ctx, request paycom.Request, body []byte, rpcErr paycom.Error) error {
	method := request.Method
	if method == "" {
		method = "unknown"
	}

	h.metrics.RecordWebhookCall(string(model.GatewayPayme), method, rpcErr.Code)
	h.logWebhook(c.UserContext(), model.GatewayPayme, method, requestID(request.ID), body, rpcErr.Code)

	return c.JSON(paycom.NewErrorResponse(request.ID, rpcErr))
}

func (h *Handler) checkPerformTransaction(ctx context.Context, _ *int64, raw json.RawMessage) (any, error) {
	var params checkPerformParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	orderKey, err := h.orderKey(params.Account)
	if err != nil {
		return nil, err
	}

	return h.payme.CheckPerformTransaction(ctx, service.PaymeCheckPerformCommand{OrderKey: orderKey, Amount: params.Amount})
}

func (h *Handler) createTransaction(ctx context.Context, id *int64, raw json.RawMessage) (any, error) {
	var params createTransactionParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	orderKey, err := h.orderKey(params.Account)
	if err != nil {
		return nil, err
	}

	return h.payme.CreateTransaction(ctx, service.PaymeCreateCommand{
		ID:        params.ID,
		Time:      params.Time,
		Amount:    params.Amount,
		OrderKey:  orderKey,
		RequestID: envelopeID(id),
	})
}

func (h *Handler) performTransaction(ctx context.Context, _ *int64, raw json.RawMessage) (any, error) {
	var params transactionParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	return h.payme.PerformTransaction(ctx, params.ID)
}

func (h *Handler) checkTransaction(ctx context.Context, _ *int64, raw json.RawMessage) (any, error) {
	var params transactionParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	return h.payme.CheckTransaction(ctx, params.ID)
}

func (h *Handler) cancelTransaction(ctx context.Context, _ *int64, raw json.RawMessage) (any, error) {
	var params cancelTransactionParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	return h.payme.CancelTransaction(ctx, params.ID, params.Reason)
}

func (h *Handler) getStatement(ctx context.Context, _ *int64, raw json.RawMessage) (any, error) {
	var params statementParams
	if err := h.decodeParams(raw, &params); err != nil {
		return nil, err
	}

	return h.payme.GetStatement(ctx, params.From, params.To)
}

func (h *Handler) decodeParams(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return service.NewServiceError(constants.ErrCodeInvalidParams, errors.New("params missing"))
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		return service.NewServiceError(constants.ErrCodeInvalidParams, err)
	}

	if errs := h.XValidator.Validate(dst); len(errs) > 0 {
		return service.NewServiceError(constants.ErrCodeInvalidParams,
			errors.New("invalid field "+errs[0].FailedField))
	}

	return nil
}

// orderKey reads the configured account field. Payme may send it as a string or a number.
func (h *Handler) orderKey(account map[string]json.RawMessage) (string, error) {
	raw, ok := account[h.paymeCfg.AccountKey]
	if !ok {
		return "", service.NewServiceError(constants.ErrCodeOrderNotFound, errMissingAccount)
	}

	var key string
	if err := json.Unmarshal(raw, &key); err != nil {
		key = strings.TrimSpace(string(raw))
		if _, numErr := strconv.ParseFloat(key, 64); numErr != nil {
			return "", service.NewServiceError(constants.ErrCodeOrderNotFound, errMissingAccount)
		}
	}

	if key == "" {
		return "", service.NewServiceError(constants.ErrCodeOrderNotFound, errMissingAccount)
	}

	return key, nil
}

func requestID(id *int64) string {
	if id == nil {
		return ""
	}
	return strconv.FormatInt(*id, 10)
}

func envelopeID(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
