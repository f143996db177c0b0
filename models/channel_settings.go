package models

import (
	"time"

	"github.com/lib/pq"
)

// ChannelSettings is the per-channel configuration consulted on every
// interaction: a mute flag and the set of disabled content ratings.
type ChannelSettings struct {
	ID              string         `json:"id"               db:"id"`
	GuildID         string         `json:"guild_id"         db:"guild_id"`
	ChannelID       string         `json:"channel_id"       db:"channel_id"`
	Muted           bool           `json:"muted"            db:"muted"`
	DisabledRatings pq.StringArray `json:"disabled_ratings" db:"disabled_ratings"`
	CreatedAt       time.Time      `json:"created_at"       db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"       db:"updated_at"`
}

// DefaultChannelSettings returns the configuration used for channels that
// have never been configured: unmuted, R-rated content disabled.
func DefaultChannelSettings(guildID, channelID string) *ChannelSettings {
	return &ChannelSettings{
		GuildID:         guildID,
		ChannelID:       channelID,
		Muted:           false,
		DisabledRatings: pq.StringArray{string(RatingR)},
	}
}

// RatingDisabled reports whether the given rating is disabled in this channel
func (s *ChannelSettings) RatingDisabled(rating Rating) bool {
	for _, disabled := range s.DisabledRatings {
		if Rating(disabled) == rating {
			return true
		}
	}
	return false
}

// EnabledRatings returns every rating not disabled in this channel
func (s *ChannelSettings) EnabledRatings() []Rating {
	enabled := make([]Rating, 0, len(Ratings))
	for _, r := range Ratings {
		if !s.RatingDisabled(r) {
			enabled = append(enabled, r)
		}
	}
	return enabled
}
