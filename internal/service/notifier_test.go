package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/komiljonov/Fitrat-ERP-sub000/internal/config"
	"github.com/komiljonov/Fitrat-ERP-sub000/internal/service"
	"github.com/komiljonov/Fitrat-ERP-sub000/pkg/httpclient"
	pkgmocks "github.com/komiljonov/Fitrat-ERP-sub000/pkg/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func notifierConfig(url string) *config.Config {
	return &config.Config{Notifier: config.Notifier{Enable: true, URL: url, Timeout: time.Second, MaxRetries: 3}}
}

func TestNotifier_Notify(t *testing.T) {
	ctx := context.Background()

	t.Run("Delivers the event body", func(t *testing.T) {
		type delivery struct {
			key string
			msg service.PaymentEventMessage
		}
		deliveries := make(chan delivery, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var d delivery
			d.key = r.Header.Get("Idempotency-Key")
			_ = json.NewDecoder(r.Body).Decode(&d.msg)
			deliveries <- d
			w.WriteHeader(http.StatusAccepted)
		}))
		defer server.Close()

		svc := service.NewNotifierService(httpclient.NewHTTPClient(time.Second), notifierConfig(server.URL), zap.NewNop())

		err := svc.Notify(ctx, performedEvent())

		require.NoError(t, err)
		d := <-deliveries
		assert.Equal(t, performedEvent().EventID, d.key)
		assert.Equal(t, "S-1001", d.msg.OrderKey)
		assert.True(t, d.msg.Amount.Equal(performedEvent().Amount))
	})

	t.Run("Retries server errors", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		svc := service.NewNotifierService(httpclient.NewHTTPClient(time.Second), notifierConfig(server.URL), zap.NewNop())

		assert.NoError(t, svc.Notify(ctx, performedEvent()))
		assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	})

	t.Run("Client errors are not retried", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusUnprocessableEntity)
		}))
		defer server.Close()

		svc := service.NewNotifierService(httpclient.NewHTTPClient(time.Second), notifierConfig(server.URL), zap.NewNop())

		err := svc.Notify(ctx, performedEvent())

		assert.ErrorIs(t, err, service.ErrNotificationRejected)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	})

	t.Run("Gives up after max retries", func(t *testing.T) {
		client := &pkgmocks.HTTPClient{}
		client.On("Post", ctx, "http://erp.local/notify", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

		svc := service.NewNotifierService(client, notifierConfig("http://erp.local/notify"), zap.NewNop())

		err := svc.Notify(ctx, performedEvent())

		assert.Error(t, err)
		client.AssertNumberOfCalls(t, "Post", 3)
	})

	t.Run("Disabled notifier does nothing", func(t *testing.T) {
		client := &pkgmocks.HTTPClient{}
		svc := service.NewNotifierService(client, &config.Config{}, zap.NewNop())

		assert.NoError(t, svc.Notify(ctx, performedEvent()))
		assert.Empty(t, client.Calls)
	})

	t.Run("Response body is drained", func(t *testing.T) {
		client := &pkgmocks.HTTPClient{}
		client.On("Post", ctx, "http://erp.local/notify", mock.Anything, mock.Anything).
			Return(&http.Response{StatusCode: http.StatusOK, Body: io.NopCloser(strings.NewReader("ok"))}, nil)

		svc := service.NewNotifierService(client, notifierConfig("http://erp.local/notify"), zap.NewNop())

		assert.NoError(t, svc.Notify(ctx, performedEvent()))
		client.AssertNumberOfCalls(t, "Post", 1)
	})
}
