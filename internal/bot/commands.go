package bot

import (
	"context"
	"fmt"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/pkg/util"
)

type commandHandler func(context.Context, domain.InteractionEvent) ([]domain.Directive, error)

func (d *Dispatcher) registerCommands() {
	d.commands = map[string]commandHandler{
		"ping":          d.cmdPing,
		"hello":         d.cmdHello,
		"roblox_verify": d.cmdRobloxVerify,
		"ticket":        d.cmdTicket,
		"close":         d.cmdClose,
	}
}

func (d *Dispatcher) cmdPing(_ context.Context, event domain.InteractionEvent) ([]domain.Directive, error) {
	return []domain.Directive{domain.NewSendMessage(event.Channel.ID, "Pong! 🏓")}, nil
}

func (d *Dispatcher) cmdHello(_ context.Context, event domain.InteractionEvent) ([]domain.Directive, error) {
	greeting := fmt.Sprintf("Hello %s! 👋", event.User.Mention())
	return []domain.Directive{domain.NewSendMessage(event.Channel.ID, greeting)}, nil
}

func (d *Dispatcher) cmdRobloxVerify(ctx context.Context, event domain.InteractionEvent) ([]domain.Directive, error) {
	robloxUsername := event.Option("roblox_username")
	if err := d.aliases.Save(ctx, event.User, robloxUsername); err != nil {
		return nil, err
	}
	confirmation := fmt.Sprintf("✅ Your Roblox username `%s` has been saved to the database, %s!",
		robloxUsername, event.User.Mention())
	return []domain.Directive{domain.NewEphemeralReply(event.Channel.ID, confirmation)}, nil
}

func (d *Dispatcher) cmdTicket(ctx context.Context, event domain.InteractionEvent) ([]domain.Directive, error) {
	created, directives, err := d.tickets.OpenTicket(ctx, event.User, event.Guild)
	if err != nil {
		return nil, err
	}
	confirmation := fmt.Sprintf("Your ticket has been created: %s", created.Mention())
	return append(directives, domain.NewEphemeralReply(event.Channel.ID, confirmation)), nil
}

func (d *Dispatcher) cmdClose(ctx context.Context, event domain.InteractionEvent) ([]domain.Directive, error) {
	return d.tickets.CloseTicket(ctx, event.User, event.Channel)
}

// rejectionText renders a command error as the user-visible ephemeral reply.
func rejectionText(err error) string {
	domainErr := util.ToDomainError(err)
	switch domainErr.Code {
	case "UNAUTHORIZED", "VALIDATION_FAILED", "WRONG_CHANNEL_KIND":
		return "❌ " + domainErr.Message
	case "TICKET_ALREADY_OPEN":
		if channelID, ok := domainErr.Details["channel_id"].(int64); ok {
			return fmt.Sprintf("You already have an open ticket: <#%d>", channelID)
		}
		return "You already have an open ticket."
	case "STORE_UNAVAILABLE":
		return "❌ There was an error saving your username. Please try again later."
	default:
		return "❌ Something went wrong. Please try again later."
	}
}
