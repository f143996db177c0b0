package testutils

import (
	"tdbot/models"

	"github.com/bwmarrin/discordgo"
)

// Int64Ptr returns a pointer to the given permission bitmask
func Int64Ptr(v int64) *int64 {
	return &v
}

// GuildCommandInteraction builds a command interaction originating from a
// guild channel with the given granted permissions
func GuildCommandInteraction(command string, permissions int64, options map[string]any) *models.Interaction {
	if options == nil {
		options = map[string]any{}
	}
	return &models.Interaction{
		Kind:        models.InteractionKindCommand,
		UserID:      "user-test",
		Username:    "tester",
		GuildID:     "guild-test",
		ChannelID:   "channel-test",
		Permissions: Int64Ptr(permissions),
		Command:     command,
		Options:     options,
	}
}

// AdminCommandInteraction builds a guild command interaction whose caller
// holds every capability
func AdminCommandInteraction(command string, options map[string]any) *models.Interaction {
	return GuildCommandInteraction(command, discordgo.PermissionAdministrator|discordgo.PermissionManageGuild, options)
}

// DMCommandInteraction builds a command interaction originating from a
// direct message (no guild, no permission mask)
func DMCommandInteraction(command string, options map[string]any) *models.Interaction {
	if options == nil {
		options = map[string]any{}
	}
	return &models.Interaction{
		Kind:      models.InteractionKindCommand,
		UserID:    "user-test",
		Username:  "tester",
		ChannelID: "dm-channel-test",
		Command:   command,
		Options:   options,
	}
}

// ComponentInteraction builds a UI-component interaction with the given
// custom id
func ComponentInteraction(customID string) *models.Interaction {
	return &models.Interaction{
		Kind:      models.InteractionKindComponent,
		UserID:    "user-test",
		Username:  "tester",
		GuildID:   "guild-test",
		ChannelID: "channel-test",
		CustomID:  customID,
	}
}
