package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"tdbot/clients"
)

// DiscordClient implements the clients.DiscordClient interface on top of
// the discordgo REST API. The bot is webhook-driven, so no gateway
// connection is ever opened.
type DiscordClient struct {
	session       *discordgo.Session
	applicationID string
}

// NewDiscordClient creates a new Discord REST client
func NewDiscordClient(botToken, applicationID string) (clients.DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &DiscordClient{
		session:       session,
		applicationID: applicationID,
	}, nil
}

// CreateDMChannel opens (or reuses) the DM channel with a user
func (c *DiscordClient) CreateDMChannel(ctx context.Context, userID string) (string, error) {
	channel, err := c.session.UserChannelCreate(userID, discordgo.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to create DM channel with user %s: %w", userID, err)
	}
	return channel.ID, nil
}

// SendMessage posts a message to a channel
func (c *DiscordClient) SendMessage(ctx context.Context, channelID, content string) (*clients.DiscordMessage, error) {
	message, err := c.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to send message to channel %s: %w", channelID, err)
	}

	return &clients.DiscordMessage{
		ID:        message.ID,
		ChannelID: message.ChannelID,
		Content:   message.Content,
	}, nil
}

// EditMessage replaces the content of an existing message
func (c *DiscordClient) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	_, err := c.session.ChannelMessageEdit(channelID, messageID, content, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to edit message %s in channel %s: %w", messageID, channelID, err)
	}
	return nil
}

// RegisteredCommandNames lists the names of the currently registered global commands
func (c *DiscordClient) RegisteredCommandNames(ctx context.Context) ([]string, error) {
	registered, err := c.session.ApplicationCommands(c.applicationID, "", discordgo.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch registered commands: %w", err)
	}

	names := make([]string, 0, len(registered))
	for _, cmd := range registered {
		names = append(names, cmd.Name)
	}
	return names, nil
}

// OverwriteCommands bulk-replaces the application's global slash commands
func (c *DiscordClient) OverwriteCommands(ctx context.Context, commands []clients.ApplicationCommand) error {
	payload := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, cmd := range commands {
		payload = append(payload, mapToSDKCommand(cmd))
	}

	_, err := c.session.ApplicationCommandBulkOverwrite(c.applicationID, "", payload, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to overwrite application commands: %w", err)
	}
	return nil
}

// GuildCount returns the number of guilds the bot is installed in
func (c *DiscordClient) GuildCount(ctx context.Context) (int, error) {
	count := 0
	afterID := ""
	for {
		guilds, err := c.session.UserGuilds(200, "", afterID, false, discordgo.WithContext(ctx))
		if err != nil {
			return 0, fmt.Errorf("failed to fetch guilds: %w", err)
		}
		count += len(guilds)
		if len(guilds) < 200 {
			return count, nil
		}
		afterID = guilds[len(guilds)-1].ID
	}
}

// mapToSDKCommand converts our publish payload into the discordgo type
func mapToSDKCommand(cmd clients.ApplicationCommand) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		optType := discordgo.ApplicationCommandOptionString
		if opt.Type == "user" {
			optType = discordgo.ApplicationCommandOptionUser
		}

		choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(opt.Choices))
		for _, choice := range opt.Choices {
			choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
				Name:  choice.Name,
				Value: choice.Value,
			})
		}

		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        optType,
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
			Choices:     choices,
		})
	}

	return &discordgo.ApplicationCommand{
		Name:        cmd.Name,
		Description: cmd.Description,
		Options:     options,
	}
}
