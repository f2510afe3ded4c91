package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/platform"
)

type recordingPlatform struct {
	mu      sync.Mutex
	deleted []int64
	err     error
}

func (r *recordingPlatform) SendMessage(context.Context, domain.SendMessageDirective) error {
	return nil
}

func (r *recordingPlatform) CreateChannel(_ context.Context, d domain.CreateChannelDirective) (domain.Channel, error) {
	return domain.Channel{ID: 1, Name: d.Name}, nil
}

func (r *recordingPlatform) DeleteChannel(_ context.Context, d domain.DeleteChannelDirective) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.deleted = append(r.deleted, d.ChannelID)
	return nil
}

func (r *recordingPlatform) deletedIDs() []int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int64{}, r.deleted...)
}

func TestScheduleDeletesAfterDelay(t *testing.T) {
	fake := &recordingPlatform{}
	scheduler := NewCloseScheduler(fake, zap.NewNop())

	scheduler.Schedule(domain.Channel{ID: 42, Name: "ticket-alex"}, 10*time.Millisecond)
	require.True(t, scheduler.Pending(42))

	assert.Eventually(t, func() bool {
		ids := fake.deletedIDs()
		return len(ids) == 1 && ids[0] == 42
	}, time.Second, 5*time.Millisecond)
	assert.False(t, scheduler.Pending(42))
}

func TestCancelStopsPendingDeletion(t *testing.T) {
	fake := &recordingPlatform{}
	scheduler := NewCloseScheduler(fake, zap.NewNop())

	scheduler.Schedule(domain.Channel{ID: 7, Name: "ticket-sam"}, time.Hour)
	require.True(t, scheduler.Cancel(7))
	assert.False(t, scheduler.Pending(7))
	assert.Empty(t, fake.deletedIDs())

	// Cancelling again reports nothing pending.
	assert.False(t, scheduler.Cancel(7))
}

func TestDeletionOfMissingChannelIsNoOp(t *testing.T) {
	fake := &recordingPlatform{err: platform.ErrChannelNotFound}
	scheduler := NewCloseScheduler(fake, zap.NewNop())

	scheduler.Schedule(domain.Channel{ID: 9, Name: "ticket-kim"}, time.Millisecond)

	assert.Eventually(t, func() bool {
		return !scheduler.Pending(9)
	}, time.Second, 5*time.Millisecond)
	assert.Empty(t, fake.deletedIDs())
}
