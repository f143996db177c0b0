package clients

import "context"

// DiscordMessage is a sent message as seen by this backend
type DiscordMessage struct {
	ID        string
	ChannelID string
	Content   string
}

// ApplicationCommandOptionChoice is one enumerated value of a command option
type ApplicationCommandOptionChoice struct {
	Name  string
	Value string
}

// ApplicationCommandOption is one option in a command's publish payload
type ApplicationCommandOption struct {
	Type        string // "string" or "user"
	Name        string
	Description string
	Required    bool
	Choices     []ApplicationCommandOptionChoice
}

// ApplicationCommand is the publish payload for one slash command
type ApplicationCommand struct {
	Name        string
	Description string
	Options     []ApplicationCommandOption
}

// DiscordClient defines the outbound Discord operations used by this backend
type DiscordClient interface {
	// CreateDMChannel opens (or reuses) the DM channel with a user and
	// returns its channel ID
	CreateDMChannel(ctx context.Context, userID string) (string, error)
	// SendMessage posts a message and returns the created message
	SendMessage(ctx context.Context, channelID, content string) (*DiscordMessage, error)
	// EditMessage replaces the content of an existing message
	EditMessage(ctx context.Context, channelID, messageID, content string) error
	// RegisteredCommandNames lists the names of the application's currently
	// registered global slash commands
	RegisteredCommandNames(ctx context.Context) ([]string, error)
	// OverwriteCommands bulk-replaces the application's global slash commands
	OverwriteCommands(ctx context.Context, commands []ApplicationCommand) error
	// GuildCount returns the number of guilds the bot is installed in
	GuildCount(ctx context.Context) (int, error)
}
