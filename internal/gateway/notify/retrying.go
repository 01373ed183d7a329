package notify

import (
	"context"
	"errors"
	"time"

	"mogilev-express/internal/logx"
)

type gateway interface {
	SendCode(ctx context.Context, chatID int64, code string) error
}

type counter interface {
	Inc()
}

// RetryConfig описывает поведение RetryingGateway
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingGateway повторяет доставку кода при временных сбоях bot API
type RetryingGateway struct {
	next    gateway
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
	sleep   func(context.Context, time.Duration) bool
}

// NewRetryingGateway wraps next with bounded retries. Returns nil when
// next is nil (bot unconfigured).
func NewRetryingGateway(next gateway, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingGateway {
	if next == nil {
		return nil
	}
	return &RetryingGateway{next: next, logger: logger, retries: retries, cfg: cfg, sleep: sleepWithContext}
}

// SendCode delivers the login code, retrying transient failures with
// exponential backoff.
func (g *RetryingGateway) SendCode(ctx context.Context, chatID int64, code string) error {
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		err := g.next.SendCode(ctx, chatID, code)
		if err == nil {
			return nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("notify gateway retry",
			logx.Int64("chat_id", chatID),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Any("err", err),
		)
		if !g.sleep(ctx, delay) {
			break
		}
	}
	return lastErr
}

// isRetryable определяет, является ли ошибка повторяемой
func isRetryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code >= 500 || se.Code == 429
	}
	// сетевые ошибки считаем временными
	return true
}

// backoff вычисляет задержку повтора
func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

// sleepWithContext ждет d; false — контекст отменили раньше.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
