// Package platform executes outbound directives against the chat platform
// connector. The connector performs them on the live platform and reports
// failures back as errors, never as failures crossing into the core.
package platform

import (
	"context"
	"errors"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// ErrRateLimited indicates the platform throttled an outbound call.
var ErrRateLimited = errors.New("platform rate limited")

// ErrChannelNotFound indicates the target channel no longer exists.
var ErrChannelNotFound = errors.New("channel not found")

// Platform is the directive executor boundary.
type Platform interface {
	SendMessage(ctx context.Context, d domain.SendMessageDirective) error
	CreateChannel(ctx context.Context, d domain.CreateChannelDirective) (domain.Channel, error)
	DeleteChannel(ctx context.Context, d domain.DeleteChannelDirective) error
}
