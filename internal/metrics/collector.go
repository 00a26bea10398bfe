package metrics

import (
	"context"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// BacklogFunc reports how many outbox rows are still waiting for the broker.
type BacklogFunc func(ctx context.Context) (int64, error)

// SystemCollector samples runtime stats and, when a backlog probe is set,
// the outbox backlog.
type SystemCollector struct {
	metrics   *Metrics
	logger    *zap.Logger
	backlog   BacklogFunc
	startTime time.Time
	ticker    *time.Ticker
	stopCh    chan struct{}
}

func NewSystemCollector(metrics *Metrics, logger *zap.Logger) *SystemCollector {
	return &SystemCollector{
		metrics:   metrics,
		logger:    logger,
		startTime: time.Now(),
		stopCh:    make(chan struct{}),
	}
}

// WithOutboxBacklog must be called before Start.
func (sc *SystemCollector) WithOutboxBacklog(fn BacklogFunc) *SystemCollector {
	sc.backlog = fn
	return sc
}

func (sc *SystemCollector) Start(interval time.Duration) {
	sc.ticker = time.NewTicker(interval)

	go sc.collectLoop(interval)
	sc.logger.Info("System metrics collector started",
		zap.Duration("interval", interval),
		zap.Bool("outboxBacklog", sc.backlog != nil))
}

func (sc *SystemCollector) Stop() {
	if sc.ticker != nil {
		sc.ticker.Stop()
	}
	close(sc.stopCh)
	sc.logger.Info("System metrics collector stopped")
}

func (sc *SystemCollector) collectLoop(interval time.Duration) {
	sc.collect(interval)

	for {
		select {
		case <-sc.ticker.C:
			sc.collect(interval)
		case <-sc.stopCh:
			return
		}
	}
}

func (sc *SystemCollector) collect(interval time.Duration) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	sc.metrics.UpdateSystemMetrics(time.Since(sc.startTime), &memStats)

	if sc.backlog == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), interval)
	defer cancel()

	pending, err := sc.backlog(ctx)
	if err != nil {
		sc.logger.Warn("Failed to sample outbox backlog", zap.Error(err))
		return
	}
	sc.metrics.SetOutboxBacklog(pending)
}
