// Package discord wraps the Discord REST API: listing guild text channels
// and fetching the recent message batch per channel. It is the external
// retrieval collaborator of the parsing core.
package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"golang.org/x/time/rate"

	"github.com/hangarlabs/simwatch/internal/models"
	"github.com/hangarlabs/simwatch/internal/parse"
)

// Client holds an authenticated REST session and paces outbound calls so a
// guild with many channels does not trip Discord's rate limits.
type Client struct {
	session      *discordgo.Session
	limiter      *rate.Limiter
	messageLimit int
}

// New creates a REST-only client from a bot token. No gateway connection is
// opened; everything runs over plain HTTP calls.
func New(token string, messageLimit, requestsPerSecond int) (*Client, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	if messageLimit <= 0 {
		messageLimit = 10
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &Client{
		session:      session,
		limiter:      rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
		messageLimit: messageLimit,
	}, nil
}

// TextChannels lists the guild's plain text channels.
func (c *Client) TextChannels(ctx context.Context, guildID string) ([]models.ChannelInfo, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	channels, err := c.session.GuildChannels(guildID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var out []models.ChannelInfo
	for _, ch := range channels {
		if ch.Type != discordgo.ChannelTypeGuildText {
			continue
		}
		out = append(out, models.ChannelInfo{
			ID:   ch.ID,
			Name: ch.Name,
			Type: int(ch.Type),
		})
	}

	return out, nil
}

// Panels fetches the channel's most recent messages and flattens their
// embeds, in message order, into the panel sequence the parsers consume.
func (c *Client) Panels(ctx context.Context, channelID string) ([]parse.Panel, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	messages, err := c.session.ChannelMessages(channelID, c.messageLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}

	var panels []parse.Panel
	for _, msg := range messages {
		panels = append(panels, PanelsFromEmbeds(msg.Embeds)...)
	}

	return panels, nil
}

// PanelsFromEmbeds converts raw message embeds into read-only panels.
func PanelsFromEmbeds(embeds []*discordgo.MessageEmbed) []parse.Panel {
	var panels []parse.Panel
	for _, e := range embeds {
		if e == nil {
			continue
		}

		panel := parse.Panel{
			Title:       e.Title,
			Description: e.Description,
		}
		if e.Footer != nil {
			panel.Footer = e.Footer.Text
		}
		for _, f := range e.Fields {
			if f == nil {
				continue
			}
			panel.Fields = append(panel.Fields, parse.Field{Name: f.Name, Value: f.Value})
		}

		panels = append(panels, panel)
	}

	return panels
}
