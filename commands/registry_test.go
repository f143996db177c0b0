package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tdbot/clients/discord"
	"tdbot/services/channelsettings"
	"tdbot/services/paranoiaqueue"
	"tdbot/services/questions"
	"tdbot/services/stats"
	"tdbot/usecases/paranoia"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	mockQuestions := new(questions.MockQuestionsService)
	mockSettings := new(channelsettings.MockChannelSettingsService)
	mockDiscord := new(discord.MockDiscordClient)
	paranoiaUseCase := paranoia.NewParanoiaUseCase(paranoiaqueue.NewQueue(), mockQuestions, mockDiscord)
	collector := stats.NewCollector(nil)
	return NewRegistry(NewDeps(mockQuestions, mockSettings, paranoiaUseCase, collector))
}

func TestRegistry(t *testing.T) {
	t.Run("contains the full command set", func(t *testing.T) {
		registry := newTestRegistry(t)
		expected := []string{
			"truth", "dare", "wyr", "nhie", "random",
			"paranoia", "answer", "settings", "stats", "ping", "help",
		}
		assert.Equal(t, expected, registry.Names())
	})

	t.Run("lookup by exact name", func(t *testing.T) {
		registry := newTestRegistry(t)

		maybeCmd := registry.Get("truth")
		require.True(t, maybeCmd.IsPresent())
		assert.Equal(t, "truth", maybeCmd.MustGet().Name)

		assert.False(t, registry.Get("unknown").IsPresent())
		assert.False(t, registry.Get("TRUTH").IsPresent(), "lookup is case-sensitive")
	})

	t.Run("every command has a handler and a description", func(t *testing.T) {
		registry := newTestRegistry(t)
		for _, cmd := range registry.All() {
			assert.NotNil(t, cmd.Handler, "command %s has no handler", cmd.Name)
			assert.NotEmpty(t, cmd.Description, "command %s has no description", cmd.Name)
		}
	})
}

func TestSyncCommands(t *testing.T) {
	ctx := context.Background()

	t.Run("skips publishing when the platform already has the same set", func(t *testing.T) {
		registry := newTestRegistry(t)
		mockDiscord := new(discord.MockDiscordClient)
		mockDiscord.On("RegisteredCommandNames", ctx).Return(registry.Names(), nil)

		err := registry.SyncCommands(ctx, mockDiscord)

		require.NoError(t, err)
		mockDiscord.AssertNotCalled(t, "OverwriteCommands", mock.Anything, mock.Anything)
	})

	t.Run("publishes when the platform set differs", func(t *testing.T) {
		registry := newTestRegistry(t)
		mockDiscord := new(discord.MockDiscordClient)
		mockDiscord.On("RegisteredCommandNames", ctx).Return([]string{"truth", "dare"}, nil)
		mockDiscord.On("OverwriteCommands", ctx, mock.Anything).Return(nil)

		err := registry.SyncCommands(ctx, mockDiscord)

		require.NoError(t, err)
		mockDiscord.AssertExpectations(t)
	})
}
