package permissions

import "github.com/bwmarrin/discordgo"

// capabilityName pairs one permission bit with its human-readable label
type capabilityName struct {
	bit  int64
	name string
}

// capabilityNames is the static bit -> label table, in render order. Only
// capabilities actually required by a command need an entry here.
var capabilityNames = []capabilityName{
	{discordgo.PermissionAdministrator, "Administrator"},
	{discordgo.PermissionManageGuild, "Manage Server"},
	{discordgo.PermissionManageChannels, "Manage Channels"},
	{discordgo.PermissionManageMessages, "Manage Messages"},
	{discordgo.PermissionKickMembers, "Kick Members"},
	{discordgo.PermissionBanMembers, "Ban Members"},
	{discordgo.PermissionMentionEveryone, "Mention Everyone"},
}

// Check evaluates a command's required capability bitmask against the
// caller's granted bitmask. A nil granted mask means the interaction
// originates outside a permission-bearing context (a DM) and always passes.
// Otherwise the caller is allowed iff every required bit is granted; the
// second return value names each missing bit in table order.
func Check(required int64, granted *int64) (bool, []string) {
	if granted == nil {
		return true, nil
	}

	missing := required &^ *granted
	if missing == 0 {
		return true, nil
	}

	names := make([]string, 0, len(capabilityNames))
	for _, capability := range capabilityNames {
		if missing&capability.bit != 0 {
			names = append(names, capability.name)
		}
	}
	return false, names
}
