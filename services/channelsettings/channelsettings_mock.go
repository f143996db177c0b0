package channelsettings

import (
	"context"

	"github.com/stretchr/testify/mock"

	"tdbot/models"
)

// MockChannelSettingsService implements the services.ChannelSettingsService
// interface for testing
type MockChannelSettingsService struct {
	mock.Mock
}

// GetChannelSettings mocks fetching one channel's settings
func (m *MockChannelSettingsService) GetChannelSettings(
	ctx context.Context,
	guildID, channelID string,
) (*models.ChannelSettings, error) {
	args := m.Called(ctx, guildID, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChannelSettings), args.Error(1)
}

// SetMuted mocks flipping the mute flag
func (m *MockChannelSettingsService) SetMuted(
	ctx context.Context,
	guildID, channelID string,
	muted bool,
) error {
	args := m.Called(ctx, guildID, channelID, muted)
	return args.Error(0)
}

// SetRatingDisabled mocks enabling/disabling one rating
func (m *MockChannelSettingsService) SetRatingDisabled(
	ctx context.Context,
	guildID, channelID string,
	rating models.Rating,
	disabled bool,
) error {
	args := m.Called(ctx, guildID, channelID, rating, disabled)
	return args.Error(0)
}
