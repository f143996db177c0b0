package channelsettings

import (
	"context"
	"fmt"
	"log"

	"github.com/lib/pq"

	"tdbot/core"
	"tdbot/db"
	"tdbot/models"
)

type ChannelSettingsService struct {
	settingsRepo *db.PostgresChannelSettingsRepository
}

func NewChannelSettingsService(repo *db.PostgresChannelSettingsRepository) *ChannelSettingsService {
	return &ChannelSettingsService{settingsRepo: repo}
}

// GetChannelSettings returns the channel's settings, falling back to the
// defaults when the channel was never configured. Settings are fetched fresh
// on every call - there is no local cache.
func (s *ChannelSettingsService) GetChannelSettings(
	ctx context.Context,
	guildID, channelID string,
) (*models.ChannelSettings, error) {
	settings, err := s.settingsRepo.GetChannelSettings(ctx, guildID, channelID)
	if err != nil {
		if core.IsNotFoundError(err) {
			return models.DefaultChannelSettings(guildID, channelID), nil
		}
		return nil, fmt.Errorf("failed to get channel settings: %w", err)
	}

	return settings, nil
}

// SetMuted flips the mute flag for one channel
func (s *ChannelSettingsService) SetMuted(
	ctx context.Context,
	guildID, channelID string,
	muted bool,
) error {
	log.Printf("📋 Starting to set muted=%t for channel %s", muted, channelID)
	settings, err := s.GetChannelSettings(ctx, guildID, channelID)
	if err != nil {
		return err
	}

	settings.Muted = muted
	if _, err := s.settingsRepo.UpsertChannelSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to set muted: %w", err)
	}

	log.Printf("📋 Completed successfully - set muted=%t for channel %s", muted, channelID)
	return nil
}

// SetRatingDisabled enables or disables one content rating for a channel
func (s *ChannelSettingsService) SetRatingDisabled(
	ctx context.Context,
	guildID, channelID string,
	rating models.Rating,
	disabled bool,
) error {
	log.Printf("📋 Starting to set rating %s disabled=%t for channel %s", rating, disabled, channelID)
	settings, err := s.GetChannelSettings(ctx, guildID, channelID)
	if err != nil {
		return err
	}

	next := make(pq.StringArray, 0, len(settings.DisabledRatings)+1)
	for _, existing := range settings.DisabledRatings {
		if models.Rating(existing) != rating {
			next = append(next, existing)
		}
	}
	if disabled {
		next = append(next, string(rating))
	}
	settings.DisabledRatings = next

	if _, err := s.settingsRepo.UpsertChannelSettings(ctx, settings); err != nil {
		return fmt.Errorf("failed to set rating disabled: %w", err)
	}

	log.Printf("📋 Completed successfully - set rating %s disabled=%t for channel %s", rating, disabled, channelID)
	return nil
}
