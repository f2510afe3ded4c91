package events

import (
	"time"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketOpened         EventType = "ticket_opened"
	EventConversationRouted   EventType = "ticket_conversation_routed"
	EventTicketCloseScheduled EventType = "ticket_close_scheduled"
	EventAliasSaved           EventType = "alias_saved"
	EventEmergencyDetected    EventType = "emergency_detected"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	GuildID   int64       `json:"guild_id"`
	ChannelID int64       `json:"channel_id"`
	UserID    int64       `json:"user_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketOpenedPayload payload.
type TicketOpenedPayload struct {
	ChannelName string `json:"channel_name"`
}

// ConversationRoutedPayload payload.
type ConversationRoutedPayload struct {
	State             domain.ConversationState `json:"state"`
	IsReportingMember bool                     `json:"is_reporting_member"`
}

// TicketCloseScheduledPayload payload.
type TicketCloseScheduledPayload struct {
	ChannelName string        `json:"channel_name"`
	AfterDelay  time.Duration `json:"after_delay"`
}

// AliasSavedPayload payload.
type AliasSavedPayload struct {
	RobloxUsername string `json:"roblox_username"`
}

// EmergencyDetectedPayload payload.
type EmergencyDetectedPayload struct {
	Phrase   string `json:"phrase"`
	HasAlias bool   `json:"has_alias"`
}
