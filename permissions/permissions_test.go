package permissions

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestCheck(t *testing.T) {
	t.Run("nil granted mask always passes", func(t *testing.T) {
		allowed, missing := Check(discordgo.PermissionAdministrator, nil)
		assert.True(t, allowed)
		assert.Empty(t, missing)
	})

	t.Run("allowed when every required bit is granted", func(t *testing.T) {
		granted := int64Ptr(discordgo.PermissionManageGuild | discordgo.PermissionKickMembers)
		allowed, missing := Check(discordgo.PermissionManageGuild, granted)
		assert.True(t, allowed)
		assert.Empty(t, missing)
	})

	t.Run("rejected when a required bit is missing", func(t *testing.T) {
		granted := int64Ptr(discordgo.PermissionKickMembers)
		allowed, missing := Check(discordgo.PermissionManageGuild, granted)
		assert.False(t, allowed)
		assert.Equal(t, []string{"Manage Server"}, missing)
	})

	t.Run("names every missing bit in table order", func(t *testing.T) {
		var required int64 = discordgo.PermissionManageGuild |
			discordgo.PermissionBanMembers |
			discordgo.PermissionKickMembers
		granted := int64Ptr(discordgo.PermissionKickMembers)

		allowed, missing := Check(required, granted)
		assert.False(t, allowed)
		assert.Equal(t, []string{"Manage Server", "Ban Members"}, missing)
	})

	t.Run("zero required mask always passes", func(t *testing.T) {
		allowed, missing := Check(0, int64Ptr(0))
		assert.True(t, allowed)
		assert.Empty(t, missing)
	})

	t.Run("matches the bitmask identity", func(t *testing.T) {
		// allowed == (required &^ granted) == 0, across a spread of masks
		masks := []int64{
			0,
			discordgo.PermissionManageGuild,
			discordgo.PermissionAdministrator | discordgo.PermissionBanMembers,
			discordgo.PermissionKickMembers | discordgo.PermissionManageChannels,
		}
		for _, required := range masks {
			for _, granted := range masks {
				allowed, _ := Check(required, &granted)
				assert.Equal(t, required&^granted == 0, allowed,
					"required=%d granted=%d", required, granted)
			}
		}
	})
}
