package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/httpclient"
	"go.uber.org/zap"
)

var ErrNotificationRejected = errors.New("NOTIFICATION_REJECTED")

// NotifierService forwards payment events to the ERP notification endpoint.
type NotifierService interface {
	Notify(ctx context.Context, msg PaymentEventMessage) error
}

type Notifier struct {
	client   httpclient.HTTPClient
	enabled  bool
	url      string
	maxRetry int
	logger   *zap.Logger
}

func NewNotifierService(client httpclient.HTTPClient, cfg *config.Config, logger *zap.Logger) NotifierService {
	maxRetry := cfg.Notifier.MaxRetries
	if maxRetry <= 0 {
		maxRetry = 1
	}

	return &Notifier{
		client:   client,
		enabled:  cfg.Notifier.Enable && cfg.Notifier.URL != "",
		url:      cfg.Notifier.URL,
		maxRetry: maxRetry,
		logger:   logger,
	}
}

func (n *Notifier) Notify(ctx context.Context, msg PaymentEventMessage) error {
	if !n.enabled {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	headers := map[string]string{
		"Content-Type":    "application/json",
		"Idempotency-Key": msg.EventID,
	}

	var lastErr error
	for attempt := 1; attempt <= n.maxRetry; attempt++ {
		status, err := n.post(ctx, body, headers)
		if err == nil {
			n.logger.Info("Payment notification delivered",
				zap.String("eventID", msg.EventID),
				zap.Int("attempt", attempt))
			return nil
		}

		if errors.Is(err, ErrNotificationRejected) {
			n.logger.Warn("Non-retryable notification error",
				zap.String("eventID", msg.EventID),
				zap.Int("status", status),
				zap.Error(err))
			return err
		}

		n.logger.Warn("Notification attempt failed",
			zap.String("eventID", msg.EventID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		lastErr = err
	}

	n.logger.Error("Notification endpoint unavailable after all retries",
		zap.String("eventID", msg.EventID),
		zap.Int("maxRetries", n.maxRetry),
		zap.Error(lastErr))

	return lastErr
}

func (n *Notifier) post(ctx context.Context, body []byte, headers map[string]string) (int, error) {
	resp, err := n.client.Post(ctx, n.url, bytes.NewReader(body), headers)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return resp.StatusCode, fmt.Errorf("notifier returned status %d", resp.StatusCode)
	case resp.StatusCode >= http.StatusBadRequest:
		return resp.StatusCode, fmt.Errorf("%w: status %d", ErrNotificationRejected, resp.StatusCode)
	default:
		return resp.StatusCode, nil
	}
}
