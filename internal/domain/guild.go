package domain

import "fmt"

// Role is a guild role as delivered by the platform connector.
type Role struct {
	ID   int64
	Name string
}

// Mention renders the platform mention syntax for the role.
func (r Role) Mention() string {
	return fmt.Sprintf("<@&%d>", r.ID)
}

// Member is a snapshot of a guild member at event time.
type Member struct {
	ID          int64
	Username    string
	DisplayName string
	RoleNames   []string
	Bot         bool
}

// Mention renders the platform mention syntax for the member.
func (m Member) Mention() string {
	return fmt.Sprintf("<@%d>", m.ID)
}

// Channel identifies a text channel.
type Channel struct {
	ID   int64
	Name string
}

// Mention renders the platform mention syntax for the channel.
func (c Channel) Mention() string {
	return fmt.Sprintf("<#%d>", c.ID)
}

// Guild is a snapshot of the server the event originated from.
type Guild struct {
	ID       int64
	Roles    []Role
	Channels []Channel
}

// ChannelByName returns the first channel with the given name.
func (g Guild) ChannelByName(name string) (Channel, bool) {
	for _, ch := range g.Channels {
		if ch.Name == name {
			return ch, true
		}
	}
	return Channel{}, false
}
