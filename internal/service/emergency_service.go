package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/guild-support-bot/internal/domain"
	"github.com/spec-kit/guild-support-bot/internal/events"
	"github.com/spec-kit/guild-support-bot/internal/roles"
)

var emergencyPhrases = []string{"getting jumped", "need help"}

// EmergencyService scans messages for emergency phrases and builds alert
// directives. Alias lookup failures never propagate; they downgrade the
// alert to the generic staff variant.
type EmergencyService struct {
	aliases    *AliasService
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// EmergencyDependencies bundles collaborators for the emergency service.
type EmergencyDependencies struct {
	Aliases    *AliasService
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewEmergencyService constructs the service.
func NewEmergencyService(deps EmergencyDependencies) *EmergencyService {
	return &EmergencyService{
		aliases:    deps.Aliases,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// Scan returns an alert directive when the message contains an emergency
// phrase, nil otherwise.
func (s *EmergencyService) Scan(ctx context.Context, event domain.MessageEvent) *domain.Directive {
	phrase, ok := matchEmergencyPhrase(event.Content)
	if !ok {
		return nil
	}

	alias, err := s.aliases.Lookup(ctx, event.Author.ID)
	if err != nil {
		s.logger.Warn("alias lookup failed during emergency",
			zap.Int64("user_id", event.Author.ID), zap.Error(err))
		alias = ""
	}

	var content string
	if alias != "" {
		membersMention := roles.Mention(event.Guild, roles.MembersRole)
		content = fmt.Sprintf(
			"🚨 **EMERGENCY DETECTED** 🚨\n"+
				"/snipe bloxiana baddies %s\n"+
				"%s Emergency assistance needed for %s!",
			alias, membersMention, event.Author.Mention())
	} else {
		staffMention := roles.Mention(event.Guild, roles.StaffRole)
		content = fmt.Sprintf(
			"🚨 **EMERGENCY DETECTED** 🚨\n"+
				"%s %s needs immediate assistance!",
			staffMention, event.Author.Mention())
	}

	s.publish(ctx, events.Event{
		Type:      events.EventEmergencyDetected,
		GuildID:   event.Guild.ID,
		ChannelID: event.Channel.ID,
		UserID:    event.Author.ID,
		Payload:   events.EmergencyDetectedPayload{Phrase: phrase, HasAlias: alias != ""},
	})

	directive := domain.NewSendMessage(event.Channel.ID, content)
	return &directive
}

func matchEmergencyPhrase(content string) (string, bool) {
	content = strings.ToLower(content)
	for _, phrase := range emergencyPhrases {
		if strings.Contains(content, phrase) {
			return phrase, true
		}
	}
	return "", false
}

func (s *EmergencyService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
