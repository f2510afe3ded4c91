package domain

// MessageEvent is an inbound chat message delivered by the connector.
type MessageEvent struct {
	Author  Member
	Channel Channel
	Guild   Guild
	Content string
}

// InteractionEvent is an inbound slash-command invocation.
type InteractionEvent struct {
	Command string
	Options map[string]string
	User    Member
	Channel Channel
	Guild   Guild
}

// Option returns a named command option, empty when absent.
func (e InteractionEvent) Option(name string) string {
	if e.Options == nil {
		return ""
	}
	return e.Options[name]
}
