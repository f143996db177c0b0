package services

import (
	"context"

	"tdbot/models"
)

// QuestionsService serves question records from the question store
type QuestionsService interface {
	GetRandomQuestion(
		ctx context.Context,
		questionType models.QuestionType,
		ratings []models.Rating,
	) (*models.Question, error)
	GetQuestionByID(ctx context.Context, id string) (*models.Question, error)
}

// ChannelSettingsService serves and mutates per-channel configuration
type ChannelSettingsService interface {
	// GetChannelSettings returns the channel's settings, falling back to the
	// defaults when the channel was never configured
	GetChannelSettings(ctx context.Context, guildID, channelID string) (*models.ChannelSettings, error)
	SetMuted(ctx context.Context, guildID, channelID string, muted bool) error
	SetRatingDisabled(ctx context.Context, guildID, channelID string, rating models.Rating, disabled bool) error
}
