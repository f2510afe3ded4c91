package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/api/dto"
	"github.com/spec-kit/guild-support-bot/internal/bot"
	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/platform"
	apperrors "github.com/spec-kit/guild-support-bot/pkg/util"
)

// GatewayHandler receives platform events from the connector and answers with
// the directives the bot core produced. Message sends are executed against the
// connector inline; the response still lists every directive so the connector
// can reconcile what was done on its behalf.
type GatewayHandler struct {
	dispatcher *bot.Dispatcher
	platform   platform.Platform
	logger     *zap.Logger
}

// NewGatewayHandler returns a new handler instance.
func NewGatewayHandler(dispatcher *bot.Dispatcher, p platform.Platform, logger *zap.Logger) *GatewayHandler {
	return &GatewayHandler{dispatcher: dispatcher, platform: p, logger: logger}
}

// Message handles POST /gateway/messages.
func (h *GatewayHandler) Message(c *fiber.Ctx) error {
	var req dto.MessageEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Channel.ID == 0 || req.Author.ID == 0 {
		return apperrors.NewValidationError("channel.id and author.id are required", nil)
	}

	directives := h.dispatcher.HandleMessage(c.UserContext(), req.ToMessageEvent())
	h.executeSends(c, directives)
	return c.JSON(dto.FromDirectives(directives))
}

// Interaction handles POST /gateway/interactions.
func (h *GatewayHandler) Interaction(c *fiber.Ctx) error {
	var req dto.InteractionEventRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid request body", nil)
	}
	if req.Command == "" {
		return apperrors.NewValidationError("command is required", nil)
	}
	if req.Channel.ID == 0 || req.User.ID == 0 {
		return apperrors.NewValidationError("channel.id and user.id are required", nil)
	}

	directives := h.dispatcher.HandleInteraction(c.UserContext(), req.ToInteractionEvent())
	h.executeSends(c, directives)
	return c.JSON(dto.FromDirectives(directives))
}

// executeSends pushes send_message directives straight to the connector.
// Delivery failures are logged and contained; the event is already handled.
func (h *GatewayHandler) executeSends(c *fiber.Ctx, directives []domain.Directive) {
	for _, directive := range directives {
		if directive.Type != domain.DirectiveSendMessage || directive.SendMessage == nil {
			continue
		}
		if err := h.platform.SendMessage(c.UserContext(), *directive.SendMessage); err != nil {
			h.logger.Warn("failed to deliver message directive",
				zap.Int64("channel_id", directive.SendMessage.ChannelID),
				zap.Error(err))
		}
	}
}
