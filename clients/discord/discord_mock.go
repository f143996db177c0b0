package discord

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdbot/clients"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

// CreateDMChannel mocks opening a DM channel with a user
func (m *MockDiscordClient) CreateDMChannel(ctx context.Context, userID string) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

// SendMessage mocks posting a message to a channel
func (m *MockDiscordClient) SendMessage(ctx context.Context, channelID, content string) (*clients.DiscordMessage, error) {
	args := m.Called(ctx, channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*clients.DiscordMessage), args.Error(1)
}

// EditMessage mocks editing an existing message
func (m *MockDiscordClient) EditMessage(ctx context.Context, channelID, messageID, content string) error {
	args := m.Called(ctx, channelID, messageID, content)
	return args.Error(0)
}

// RegisteredCommandNames mocks listing registered global commands
func (m *MockDiscordClient) RegisteredCommandNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// OverwriteCommands mocks bulk-replacing the global slash commands
func (m *MockDiscordClient) OverwriteCommands(ctx context.Context, commands []clients.ApplicationCommand) error {
	args := m.Called(ctx, commands)
	return args.Error(0)
}

// GuildCount mocks counting installed guilds
func (m *MockDiscordClient) GuildCount(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
