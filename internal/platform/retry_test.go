package platform

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/pkg/util"
)

type fakePlatform struct {
	failures int
	calls    int
	err      error
}

func (f *fakePlatform) SendMessage(_ context.Context, _ domain.SendMessageDirective) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func (f *fakePlatform) CreateChannel(_ context.Context, d domain.CreateChannelDirective) (domain.Channel, error) {
	f.calls++
	if f.calls <= f.failures {
		return domain.Channel{}, f.err
	}
	return domain.Channel{ID: 99, Name: d.Name}, nil
}

func (f *fakePlatform) DeleteChannel(_ context.Context, _ domain.DeleteChannelDirective) error {
	f.calls++
	if f.calls <= f.failures {
		return f.err
	}
	return nil
}

func newTestRetrier(inner Platform, maxAttempts int) (*RetryingPlatform, *[]time.Duration) {
	retrier := NewRetryingPlatform(inner, zap.NewNop(), 100*time.Millisecond, maxAttempts)
	var slept []time.Duration
	retrier.sleep = func(_ context.Context, d time.Duration) error {
		slept = append(slept, d)
		return nil
	}
	return retrier, &slept
}

func TestRetrySucceedsAfterBackoff(t *testing.T) {
	inner := &fakePlatform{failures: 2, err: ErrRateLimited}
	retrier, slept := newTestRetrier(inner, 5)

	err := retrier.SendMessage(context.Background(), domain.SendMessageDirective{ChannelID: 1, Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
	// Delays double each attempt.
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond}, *slept)
}

func TestRetryAbandonsAfterCeiling(t *testing.T) {
	inner := &fakePlatform{failures: 100, err: ErrRateLimited}
	retrier, slept := newTestRetrier(inner, 3)

	err := retrier.DeleteChannel(context.Background(), domain.DeleteChannelDirective{ChannelID: 1})
	require.Error(t, err)
	assert.True(t, util.HasCode(err, "PLATFORM_RATE_LIMITED"))
	assert.Equal(t, 3, inner.calls)
	assert.Len(t, *slept, 2)
}

func TestRetryDoesNotRetryOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	inner := &fakePlatform{failures: 100, err: boom}
	retrier, slept := newTestRetrier(inner, 5)

	err := retrier.SendMessage(context.Background(), domain.SendMessageDirective{ChannelID: 1})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, inner.calls)
	assert.Empty(t, *slept)
}

func TestRetryStopsWhenContextCancelled(t *testing.T) {
	inner := &fakePlatform{failures: 100, err: ErrRateLimited}
	retrier := NewRetryingPlatform(inner, zap.NewNop(), time.Hour, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retrier.SendMessage(ctx, domain.SendMessageDirective{ChannelID: 1})
	require.ErrorIs(t, err, context.Canceled)
	// The backoff aborts instead of waiting out the delay.
	assert.Equal(t, 1, inner.calls)
}

func TestRetryCreateChannelReturnsResult(t *testing.T) {
	inner := &fakePlatform{failures: 1, err: ErrRateLimited}
	retrier, _ := newTestRetrier(inner, 5)

	created, err := retrier.CreateChannel(context.Background(), domain.CreateChannelDirective{Name: "ticket-alex"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)
	assert.Equal(t, "ticket-alex", created.Name)
}
