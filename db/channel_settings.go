package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tdbot/core"
	"tdbot/models"
)

type PostgresChannelSettingsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for channel_settings table
var channelSettingsColumns = []string{
	"id",
	"guild_id",
	"channel_id",
	"muted",
	"disabled_ratings",
	"created_at",
	"updated_at",
}

func NewPostgresChannelSettingsRepository(db *sqlx.DB, schema string) *PostgresChannelSettingsRepository {
	return &PostgresChannelSettingsRepository{db: db, schema: schema}
}

// GetChannelSettings fetches the settings row for one channel.
// Returns core.ErrNotFound when the channel was never configured.
func (r *PostgresChannelSettingsRepository) GetChannelSettings(
	ctx context.Context,
	guildID, channelID string,
) (*models.ChannelSettings, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s.channel_settings
		WHERE guild_id = $1 AND channel_id = $2
	`, strings.Join(channelSettingsColumns, ", "), r.schema)

	var settings models.ChannelSettings
	err := r.db.QueryRowxContext(ctx, query, guildID, channelID).StructScan(&settings)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get channel settings: %w", err)
	}

	return &settings, nil
}

// UpsertChannelSettings creates or updates the settings row for one channel
func (r *PostgresChannelSettingsRepository) UpsertChannelSettings(
	ctx context.Context,
	settings *models.ChannelSettings,
) (*models.ChannelSettings, error) {
	id := core.NewID("cs")
	returningStr := strings.Join(channelSettingsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.channel_settings (
			id, guild_id, channel_id, muted, disabled_ratings
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (guild_id, channel_id)
		DO UPDATE SET
			muted = EXCLUDED.muted,
			disabled_ratings = EXCLUDED.disabled_ratings,
			updated_at = NOW()
		RETURNING %s
	`, r.schema, returningStr)

	var updated models.ChannelSettings
	err := r.db.QueryRowxContext(
		ctx,
		query,
		id, settings.GuildID, settings.ChannelID, settings.Muted, pq.Array([]string(settings.DisabledRatings)),
	).StructScan(&updated)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert channel settings: %w", err)
	}

	return &updated, nil
}
