package dto

import (
	"time"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// RoleDTO is a guild role on the wire.
type RoleDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberDTO is a guild member snapshot on the wire.
type MemberDTO struct {
	ID          int64    `json:"id"`
	Username    string   `json:"username"`
	DisplayName string   `json:"display_name,omitempty"`
	RoleNames   []string `json:"role_names,omitempty"`
	Bot         bool     `json:"bot,omitempty"`
}

// ChannelDTO is a channel reference on the wire.
type ChannelDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GuildDTO is a guild snapshot on the wire.
type GuildDTO struct {
	ID       int64        `json:"id"`
	Roles    []RoleDTO    `json:"roles,omitempty"`
	Channels []ChannelDTO `json:"channels,omitempty"`
}

// MessageEventRequest is the connector's inbound message payload.
type MessageEventRequest struct {
	Author  MemberDTO  `json:"author"`
	Channel ChannelDTO `json:"channel"`
	Guild   GuildDTO   `json:"guild"`
	Content string     `json:"content"`
}

// InteractionEventRequest is the connector's slash-command payload.
type InteractionEventRequest struct {
	Command string            `json:"command"`
	Options map[string]string `json:"options,omitempty"`
	User    MemberDTO         `json:"user"`
	Channel ChannelDTO        `json:"channel"`
	Guild   GuildDTO          `json:"guild"`
}

// DirectiveDTO is one emitted directive on the wire.
type DirectiveDTO struct {
	Type              string                 `json:"type"`
	ChannelID         int64                  `json:"channel_id,omitempty"`
	Content           string                 `json:"content,omitempty"`
	Ephemeral         bool                   `json:"ephemeral,omitempty"`
	GuildID           int64                  `json:"guild_id,omitempty"`
	Name              string                 `json:"name,omitempty"`
	Topic             string                 `json:"topic,omitempty"`
	Visibility        []ChannelPermissionDTO `json:"visibility,omitempty"`
	AfterDelaySeconds int                    `json:"after_delay_seconds,omitempty"`
}

// ChannelPermissionDTO is one channel visibility rule on the wire.
type ChannelPermissionDTO struct {
	Target   string `json:"target"`
	TargetID int64  `json:"target_id,omitempty"`
	Read     bool   `json:"read"`
	Write    bool   `json:"write"`
}

// DispatchResponse lists the directives emitted for one event.
type DispatchResponse struct {
	Directives []DirectiveDTO `json:"directives"`
}

// TokenRequest is the connector's credential exchange payload.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse carries the issued gateway bearer token.
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// ToMessageEvent maps the wire payload to the domain event.
func (r MessageEventRequest) ToMessageEvent() domain.MessageEvent {
	return domain.MessageEvent{
		Author:  r.Author.toDomain(),
		Channel: domain.Channel{ID: r.Channel.ID, Name: r.Channel.Name},
		Guild:   r.Guild.toDomain(),
		Content: r.Content,
	}
}

// ToInteractionEvent maps the wire payload to the domain event.
func (r InteractionEventRequest) ToInteractionEvent() domain.InteractionEvent {
	return domain.InteractionEvent{
		Command: r.Command,
		Options: r.Options,
		User:    r.User.toDomain(),
		Channel: domain.Channel{ID: r.Channel.ID, Name: r.Channel.Name},
		Guild:   r.Guild.toDomain(),
	}
}

func (m MemberDTO) toDomain() domain.Member {
	return domain.Member{
		ID:          m.ID,
		Username:    m.Username,
		DisplayName: m.DisplayName,
		RoleNames:   m.RoleNames,
		Bot:         m.Bot,
	}
}

func (g GuildDTO) toDomain() domain.Guild {
	guild := domain.Guild{ID: g.ID}
	for _, role := range g.Roles {
		guild.Roles = append(guild.Roles, domain.Role{ID: role.ID, Name: role.Name})
	}
	for _, channel := range g.Channels {
		guild.Channels = append(guild.Channels, domain.Channel{ID: channel.ID, Name: channel.Name})
	}
	return guild
}

// FromDirective maps a domain directive to its wire form.
func FromDirective(directive domain.Directive) DirectiveDTO {
	out := DirectiveDTO{Type: string(directive.Type)}
	switch directive.Type {
	case domain.DirectiveSendMessage:
		out.ChannelID = directive.SendMessage.ChannelID
		out.Content = directive.SendMessage.Content
		out.Ephemeral = directive.SendMessage.Ephemeral
	case domain.DirectiveCreateChannel:
		out.GuildID = directive.CreateChannel.GuildID
		out.Name = directive.CreateChannel.Name
		out.Topic = directive.CreateChannel.Topic
		for _, perm := range directive.CreateChannel.Visibility {
			out.Visibility = append(out.Visibility, ChannelPermissionDTO{
				Target:   string(perm.Target),
				TargetID: perm.TargetID,
				Read:     perm.Read,
				Write:    perm.Write,
			})
		}
	case domain.DirectiveDeleteChannel:
		out.ChannelID = directive.DeleteChannel.ChannelID
		out.AfterDelaySeconds = int(directive.DeleteChannel.AfterDelay.Seconds())
	}
	return out
}

// FromDirectives maps a directive list into a dispatch response.
func FromDirectives(directives []domain.Directive) DispatchResponse {
	resp := DispatchResponse{Directives: []DirectiveDTO{}}
	for _, directive := range directives {
		resp.Directives = append(resp.Directives, FromDirective(directive))
	}
	return resp
}
