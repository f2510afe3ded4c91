package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/platform"
)

// CloseScheduler defers ticket channel deletion so the closing message can
// be read before removal. Pending deletions are cancellable, and deleting a
// channel that is already gone is a no-op.
type CloseScheduler struct {
	mu       sync.Mutex
	platform platform.Platform
	logger   *zap.Logger
	pending  map[int64]*time.Timer
}

// NewCloseScheduler builds a scheduler executing deletions via the platform.
func NewCloseScheduler(p platform.Platform, logger *zap.Logger) *CloseScheduler {
	return &CloseScheduler{
		platform: p,
		logger:   logger,
		pending:  make(map[int64]*time.Timer),
	}
}

// Schedule queues deletion of the channel after the given delay. Scheduling
// the same channel twice resets the timer.
func (s *CloseScheduler) Schedule(channel domain.Channel, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.pending[channel.ID]; ok {
		timer.Stop()
	}
	s.pending[channel.ID] = time.AfterFunc(delay, func() {
		s.fire(channel)
	})
}

// Cancel stops a pending deletion, reporting whether one was pending.
func (s *CloseScheduler) Cancel(channelID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.pending[channelID]
	if !ok {
		return false
	}
	timer.Stop()
	delete(s.pending, channelID)
	return true
}

// Stop cancels every pending deletion. Used on shutdown.
func (s *CloseScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, timer := range s.pending {
		timer.Stop()
		delete(s.pending, id)
	}
}

// Pending reports whether a deletion is queued for the channel.
func (s *CloseScheduler) Pending(channelID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[channelID]
	return ok
}

func (s *CloseScheduler) fire(channel domain.Channel) {
	s.mu.Lock()
	delete(s.pending, channel.ID)
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.platform.DeleteChannel(ctx, domain.DeleteChannelDirective{ChannelID: channel.ID})
	switch {
	case err == nil:
		s.logger.Info("ticket channel deleted",
			zap.Int64("channel_id", channel.ID),
			zap.String("channel", channel.Name))
	case errors.Is(err, platform.ErrChannelNotFound):
		s.logger.Debug("ticket channel already gone", zap.Int64("channel_id", channel.ID))
	default:
		s.logger.Error("failed to delete ticket channel",
			zap.Int64("channel_id", channel.ID),
			zap.Error(err))
	}
}
