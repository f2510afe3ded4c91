package domain

import "time"

// ConversationState enumerates the per-ticket conversation machine.
type ConversationState string

const (
	ConversationStarted         ConversationState = "started"
	ConversationReportingMember ConversationState = "reporting_member"
	ConversationGeneralHelp     ConversationState = "general_help"
)

// TicketConversation is the persisted record for one ticket channel.
// ChannelID is unique per active ticket; the record outlives the channel.
type TicketConversation struct {
	ID                int64
	UserID            int64
	ChannelID         int64
	State             ConversationState
	IsReportingMember *bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

var allowedTransitions = map[ConversationState][]ConversationState{
	ConversationStarted:         {ConversationReportingMember, ConversationGeneralHelp},
	ConversationReportingMember: {},
	ConversationGeneralHelp:     {},
}

// IsValidTransition reports whether the conversation may move from current to next.
// Transitions are monotonic: the two routed states are terminal.
func IsValidTransition(current, next ConversationState) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}
