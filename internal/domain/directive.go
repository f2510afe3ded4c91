package domain

import "time"

// DirectiveType enumerates the outbound instructions the bot emits.
type DirectiveType string

const (
	DirectiveSendMessage   DirectiveType = "send_message"
	DirectiveCreateChannel DirectiveType = "create_channel"
	DirectiveDeleteChannel DirectiveType = "delete_channel"
)

// PermissionTarget selects who a channel permission entry applies to.
type PermissionTarget string

const (
	PermissionEveryone PermissionTarget = "everyone"
	PermissionMember   PermissionTarget = "member"
	PermissionRole     PermissionTarget = "role"
)

// ChannelPermission is one visibility rule for a created channel.
type ChannelPermission struct {
	Target   PermissionTarget
	TargetID int64
	Read     bool
	Write    bool
}

// SendMessageDirective posts a message to a channel. Ephemeral replies are
// visible only to the invoking user.
type SendMessageDirective struct {
	ChannelID int64
	Content   string
	Ephemeral bool
}

// CreateChannelDirective creates a restricted text channel in a guild.
type CreateChannelDirective struct {
	GuildID    int64
	Name       string
	Topic      string
	Visibility []ChannelPermission
}

// DeleteChannelDirective removes a channel, optionally after a delay so a
// closing message can be read first.
type DeleteChannelDirective struct {
	ChannelID  int64
	AfterDelay time.Duration
}

// Directive is the tagged union handed to the directive executor.
type Directive struct {
	Type          DirectiveType
	SendMessage   *SendMessageDirective
	CreateChannel *CreateChannelDirective
	DeleteChannel *DeleteChannelDirective
}

// NewSendMessage builds a send_message directive.
func NewSendMessage(channelID int64, content string) Directive {
	return Directive{
		Type:        DirectiveSendMessage,
		SendMessage: &SendMessageDirective{ChannelID: channelID, Content: content},
	}
}

// NewEphemeralReply builds a send_message directive visible only to the invoker.
func NewEphemeralReply(channelID int64, content string) Directive {
	return Directive{
		Type:        DirectiveSendMessage,
		SendMessage: &SendMessageDirective{ChannelID: channelID, Content: content, Ephemeral: true},
	}
}

// NewCreateChannel builds a create_channel directive.
func NewCreateChannel(guildID int64, name, topic string, visibility []ChannelPermission) Directive {
	return Directive{
		Type: DirectiveCreateChannel,
		CreateChannel: &CreateChannelDirective{
			GuildID:    guildID,
			Name:       name,
			Topic:      topic,
			Visibility: visibility,
		},
	}
}

// NewDeleteChannel builds a delete_channel directive.
func NewDeleteChannel(channelID int64, afterDelay time.Duration) Directive {
	return Directive{
		Type:          DirectiveDeleteChannel,
		DeleteChannel: &DeleteChannelDirective{ChannelID: channelID, AfterDelay: afterDelay},
	}
}
