// Package bot routes inbound platform events to the core services and turns
// their outcomes into outbound directives. The host (the HTTP gateway here)
// adapts this explicit dispatch surface to whatever delivery model the
// connector uses.
package bot

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/observability"
	"github.com/spec-kit/guild-support-bot/internal/service"
)

// Dispatcher is the event-handling entry point for the bot core.
type Dispatcher struct {
	tickets   *service.TicketService
	emergency *service.EmergencyService
	aliases   *service.AliasService
	metrics   *observability.Metrics
	logger    *zap.Logger
	commands  map[string]commandHandler
}

// Dependencies bundles collaborators for the dispatcher.
type Dependencies struct {
	Tickets   *service.TicketService
	Emergency *service.EmergencyService
	Aliases   *service.AliasService
	Metrics   *observability.Metrics
	Logger    *zap.Logger
}

// NewDispatcher constructs the dispatcher and registers the command set.
func NewDispatcher(deps Dependencies) *Dispatcher {
	d := &Dispatcher{
		tickets:   deps.Tickets,
		emergency: deps.Emergency,
		aliases:   deps.Aliases,
		metrics:   deps.Metrics,
		logger:    deps.Logger,
	}
	d.registerCommands()
	return d
}

// HandleMessage runs the emergency detector and the ticket lifecycle manager
// on one inbound message. The two are independent: a failure inside one never
// suppresses the other, and bot-authored messages are ignored entirely.
func (d *Dispatcher) HandleMessage(ctx context.Context, event domain.MessageEvent) []domain.Directive {
	if event.Author.Bot {
		return nil
	}

	var directives []domain.Directive
	if alert := d.emergency.Scan(ctx, event); alert != nil {
		directives = append(directives, *alert)
	}
	directives = append(directives, d.tickets.HandleMessage(ctx, event)...)

	for _, directive := range directives {
		d.metrics.RecordDirective(string(directive.Type))
	}
	return directives
}

// HandleInteraction dispatches a slash-command invocation. Command failures
// are user-visible: they come back as ephemeral rejection directives rather
// than errors, so one bad command never disturbs the event stream.
func (d *Dispatcher) HandleInteraction(ctx context.Context, event domain.InteractionEvent) []domain.Directive {
	handler, ok := d.commands[event.Command]
	if !ok {
		return []domain.Directive{domain.NewEphemeralReply(event.Channel.ID, "❌ Unknown command.")}
	}

	directives, err := handler(ctx, event)
	if err != nil {
		d.logger.Info("command rejected",
			zap.String("command", event.Command),
			zap.Int64("user_id", event.User.ID),
			zap.Error(err))
		directives = []domain.Directive{domain.NewEphemeralReply(event.Channel.ID, rejectionText(err))}
	}

	for _, directive := range directives {
		d.metrics.RecordDirective(string(directive.Type))
	}
	return directives
}
