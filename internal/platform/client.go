package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spec-kit/guild-support-bot/internal/domain"
)

// Client talks to the connector REST API using the bot credential token.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient builds a connector client.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type sendMessageRequest struct {
	ChannelID int64  `json:"channel_id"`
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral,omitempty"`
}

type channelPermissionRequest struct {
	Target   string `json:"target"`
	TargetID int64  `json:"target_id,omitempty"`
	Read     bool   `json:"read"`
	Write    bool   `json:"write"`
}

type createChannelRequest struct {
	Name       string                     `json:"name"`
	Topic      string                     `json:"topic,omitempty"`
	Visibility []channelPermissionRequest `json:"visibility"`
}

type channelResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// SendMessage posts a message to a channel.
func (c *Client) SendMessage(ctx context.Context, d domain.SendMessageDirective) error {
	body := sendMessageRequest{ChannelID: d.ChannelID, Content: d.Content, Ephemeral: d.Ephemeral}
	return c.do(ctx, http.MethodPost, "/api/messages", body, nil)
}

// CreateChannel creates a restricted text channel and returns it.
func (c *Client) CreateChannel(ctx context.Context, d domain.CreateChannelDirective) (domain.Channel, error) {
	body := createChannelRequest{Name: d.Name, Topic: d.Topic}
	for _, perm := range d.Visibility {
		body.Visibility = append(body.Visibility, channelPermissionRequest{
			Target:   string(perm.Target),
			TargetID: perm.TargetID,
			Read:     perm.Read,
			Write:    perm.Write,
		})
	}

	var created channelResponse
	path := fmt.Sprintf("/api/guilds/%d/channels", d.GuildID)
	if err := c.do(ctx, http.MethodPost, path, body, &created); err != nil {
		return domain.Channel{}, err
	}
	return domain.Channel{ID: created.ID, Name: created.Name}, nil
}

// DeleteChannel removes a channel. The delay, if any, is handled by the
// caller's scheduler; the connector deletes immediately.
func (c *Client) DeleteChannel(ctx context.Context, d domain.DeleteChannelDirective) error {
	path := fmt.Sprintf("/api/channels/%d", d.ChannelID)
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bot "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusNotFound:
		return ErrChannelNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("connector returned status %d for %s %s", resp.StatusCode, method, path)
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
