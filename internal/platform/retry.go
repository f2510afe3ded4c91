package platform

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/pkg/util"
)

// RetryingPlatform wraps a Platform with bounded exponential backoff for
// rate-limited calls. After the attempt ceiling the operation is abandoned
// and logged, never retried indefinitely.
type RetryingPlatform struct {
	inner       Platform
	logger      *zap.Logger
	baseDelay   time.Duration
	maxAttempts int
	sleep       func(context.Context, time.Duration) error
}

// NewRetryingPlatform builds a retrying wrapper around inner.
func NewRetryingPlatform(inner Platform, logger *zap.Logger, baseDelay time.Duration, maxAttempts int) *RetryingPlatform {
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &RetryingPlatform{
		inner:       inner,
		logger:      logger,
		baseDelay:   baseDelay,
		maxAttempts: maxAttempts,
		sleep:       sleepContext,
	}
}

// sleepContext waits out the delay unless the context ends first.
func sleepContext(ctx context.Context, delay time.Duration) error {
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (p *RetryingPlatform) SendMessage(ctx context.Context, d domain.SendMessageDirective) error {
	return p.withRetry(ctx, "send_message", func() error {
		return p.inner.SendMessage(ctx, d)
	})
}

func (p *RetryingPlatform) CreateChannel(ctx context.Context, d domain.CreateChannelDirective) (domain.Channel, error) {
	var created domain.Channel
	err := p.withRetry(ctx, "create_channel", func() error {
		var innerErr error
		created, innerErr = p.inner.CreateChannel(ctx, d)
		return innerErr
	})
	return created, err
}

func (p *RetryingPlatform) DeleteChannel(ctx context.Context, d domain.DeleteChannelDirective) error {
	return p.withRetry(ctx, "delete_channel", func() error {
		return p.inner.DeleteChannel(ctx, d)
	})
}

func (p *RetryingPlatform) withRetry(ctx context.Context, operation string, call func() error) error {
	delay := p.baseDelay
	var err error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		err = call()
		if err == nil || !errors.Is(err, ErrRateLimited) {
			return err
		}
		if attempt == p.maxAttempts {
			break
		}
		p.logger.Warn("rate limited, backing off",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay))
		if err := p.sleep(ctx, delay); err != nil {
			return err
		}
		delay *= 2
	}
	p.logger.Error("abandoning rate-limited operation",
		zap.String("operation", operation),
		zap.Int("attempts", p.maxAttempts))
	return util.NewRateLimited(err)
}
