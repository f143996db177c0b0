package commands

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"tdbot/core"
	"tdbot/models"
	"tdbot/services"
	"tdbot/services/stats"
	"tdbot/usecases/paranoia"
)

// Deps carries everything the builtin command handlers need
type Deps struct {
	Questions       services.QuestionsService
	ChannelSettings services.ChannelSettingsService
	Paranoia        *paranoia.ParanoiaUseCase
	Stats           *stats.Collector
	Rng             *rand.Rand
}

// NewDeps fills in the optional fields with defaults
func NewDeps(
	questions services.QuestionsService,
	channelSettings services.ChannelSettingsService,
	paranoiaUseCase *paranoia.ParanoiaUseCase,
	statsCollector *stats.Collector,
) Deps {
	return Deps{
		Questions:       questions,
		ChannelSettings: channelSettings,
		Paranoia:        paranoiaUseCase,
		Stats:           statsCollector,
		Rng:             rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

var ratingChoices = []models.OptionChoice{
	{Name: "PG", Value: string(models.RatingPG)},
	{Name: "PG13", Value: string(models.RatingPG13)},
	{Name: "R", Value: string(models.RatingR)},
}

func (d Deps) truthCommand() *models.Command {
	return d.questionCommand("truth", "Get a random truth question", models.QuestionTypeTruth)
}

func (d Deps) dareCommand() *models.Command {
	return d.questionCommand("dare", "Get a random dare", models.QuestionTypeDare)
}

func (d Deps) wyrCommand() *models.Command {
	return d.questionCommand("wyr", "Get a random would-you-rather question", models.QuestionTypeWYR)
}

func (d Deps) nhieCommand() *models.Command {
	return d.questionCommand("nhie", "Get a random never-have-I-ever question", models.QuestionTypeNHIE)
}

func (d Deps) questionCommand(name, description string, questionType models.QuestionType) *models.Command {
	return &models.Command{
		Name:        name,
		Description: description,
		Options: []models.CommandOption{
			{
				Name:        "rating",
				Description: "Maturity rating of the question",
				Type:        models.OptionTypeString,
				Choices:     ratingChoices,
			},
		},
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			return d.serveQuestion(ctx, interaction, questionType)
		},
	}
}

func (d Deps) randomCommand() *models.Command {
	randomTypes := []models.QuestionType{
		models.QuestionTypeTruth,
		models.QuestionTypeDare,
		models.QuestionTypeWYR,
		models.QuestionTypeNHIE,
	}
	return &models.Command{
		Name:        "random",
		Description: "Get a random question of any type",
		Options: []models.CommandOption{
			{
				Name:        "rating",
				Description: "Maturity rating of the question",
				Type:        models.OptionTypeString,
				Choices:     ratingChoices,
			},
		},
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			questionType := randomTypes[d.Rng.Intn(len(randomTypes))]
			return d.serveQuestion(ctx, interaction, questionType)
		},
	}
}

// serveQuestion resolves the allowed rating set for the originating channel
// and replies with one random question
func (d Deps) serveQuestion(
	ctx context.Context,
	interaction *models.Interaction,
	questionType models.QuestionType,
) (*models.Response, error) {
	var settings *models.ChannelSettings
	if !interaction.IsDM() {
		var err error
		settings, err = d.ChannelSettings.GetChannelSettings(ctx, interaction.GuildID, interaction.ChannelID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve channel settings: %w", err)
		}
	}

	var ratings []models.Rating
	if ratingStr, ok := interaction.StringOption("rating"); ok {
		rating, valid := models.ParseRating(ratingStr)
		if !valid {
			return models.NewEphemeralResponse(
				fmt.Sprintf("Invalid rating. Valid ratings are: %s.",
					strings.Join(models.RatingNames(), ", "))), nil
		}
		if settings != nil && settings.RatingDisabled(rating) {
			return models.NewEphemeralResponse(
				fmt.Sprintf("Rating %s is disabled in this channel.", rating)), nil
		}
		ratings = []models.Rating{rating}
	} else if settings != nil {
		ratings = settings.EnabledRatings()
	} else {
		ratings = models.DefaultRatings()
	}

	if len(ratings) == 0 {
		return models.NewEphemeralResponse("All ratings are disabled in this channel."), nil
	}

	question, err := d.Questions.GetRandomQuestion(ctx, questionType, ratings)
	if err != nil {
		if core.IsNotFoundError(err) {
			return models.NewEphemeralResponse("No questions match the allowed ratings here."), nil
		}
		return nil, fmt.Errorf("failed to fetch question: %w", err)
	}

	return models.NewResponse(fmt.Sprintf("**%s**\n*Type: %s | Rating: %s | ID: %s*",
		question.Text, question.Type, question.Rating, question.ID)), nil
}

func (d Deps) paranoiaCommand() *models.Command {
	return &models.Command{
		Name:        "paranoia",
		Description: "Send another user a secret paranoia question",
		Options: []models.CommandOption{
			{
				Name:        "user",
				Description: "Who to ask",
				Type:        models.OptionTypeUser,
				Required:    true,
			},
			{
				Name:        "rating",
				Description: "Maturity rating of the question",
				Type:        models.OptionTypeString,
				Choices:     ratingChoices,
			},
		},
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			if interaction.IsDM() {
				return models.NewEphemeralResponse("Paranoia questions can only be sent from a server channel."), nil
			}

			targetUserID, ok := interaction.StringOption("user")
			if !ok || targetUserID == "" {
				return models.NewEphemeralResponse("You need to pick a user to ask."), nil
			}

			rating := models.RatingPG
			if ratingStr, hasRating := interaction.StringOption("rating"); hasRating {
				if parsed, valid := models.ParseRating(ratingStr); valid {
					rating = parsed
				}
			}

			return d.Paranoia.Ask(ctx, interaction, targetUserID, rating)
		},
	}
}

func (d Deps) answerCommand() *models.Command {
	return &models.Command{
		Name:        "answer",
		Description: "Answer your pending paranoia question",
		Options: []models.CommandOption{
			{
				Name:        "answer",
				Description: "Your answer",
				Type:        models.OptionTypeString,
				Required:    true,
			},
		},
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			answer, ok := interaction.StringOption("answer")
			if !ok || answer == "" {
				return models.NewEphemeralResponse("You need to provide an answer."), nil
			}
			return d.Paranoia.Answer(ctx, interaction, answer)
		},
	}
}

func (d Deps) settingsCommand() *models.Command {
	return &models.Command{
		Name:        "settings",
		Description: "View or change this channel's bot settings",
		Options: []models.CommandOption{
			{
				Name:        "action",
				Description: "What to change",
				Type:        models.OptionTypeString,
				Required:    true,
				Choices: []models.OptionChoice{
					{Name: "View", Value: "view"},
					{Name: "Mute", Value: "mute"},
					{Name: "Unmute", Value: "unmute"},
					{Name: "Disable rating", Value: "disable-rating"},
					{Name: "Enable rating", Value: "enable-rating"},
				},
			},
			{
				Name:        "rating",
				Description: "Rating to enable or disable",
				Type:        models.OptionTypeString,
				Choices:     ratingChoices,
			},
		},
		RequiredPermissions: discordgo.PermissionManageGuild,
		Handler:             d.handleSettings,
	}
}

func (d Deps) handleSettings(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
	if interaction.IsDM() {
		return models.NewEphemeralResponse("Settings can only be managed from a server channel."), nil
	}

	action, _ := interaction.StringOption("action")
	switch action {
	case "view":
		settings, err := d.ChannelSettings.GetChannelSettings(ctx, interaction.GuildID, interaction.ChannelID)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch channel settings: %w", err)
		}
		disabled := "none"
		if len(settings.DisabledRatings) > 0 {
			disabled = strings.Join(settings.DisabledRatings, ", ")
		}
		return models.NewEphemeralResponse(fmt.Sprintf(
			"**Channel settings**\nMuted: %t\nDisabled ratings: %s", settings.Muted, disabled)), nil

	case "mute", "unmute":
		muted := action == "mute"
		if err := d.ChannelSettings.SetMuted(ctx, interaction.GuildID, interaction.ChannelID, muted); err != nil {
			return nil, fmt.Errorf("failed to update mute flag: %w", err)
		}
		if muted {
			return models.NewResponse("🔇 I'll stay quiet in this channel. Use `/settings` to unmute."), nil
		}
		return models.NewResponse("🔊 I'm back! This channel is unmuted."), nil

	case "disable-rating", "enable-rating":
		ratingStr, ok := interaction.StringOption("rating")
		if !ok {
			return models.NewEphemeralResponse("You need to pick a rating for this action."), nil
		}
		rating, valid := models.ParseRating(ratingStr)
		if !valid {
			return models.NewEphemeralResponse(
				fmt.Sprintf("Invalid rating. Valid ratings are: %s.",
					strings.Join(models.RatingNames(), ", "))), nil
		}
		disabled := action == "disable-rating"
		if err := d.ChannelSettings.SetRatingDisabled(
			ctx, interaction.GuildID, interaction.ChannelID, rating, disabled); err != nil {
			return nil, fmt.Errorf("failed to update rating setting: %w", err)
		}
		if disabled {
			return models.NewResponse(fmt.Sprintf("Rating %s is now disabled in this channel.", rating)), nil
		}
		return models.NewResponse(fmt.Sprintf("Rating %s is now enabled in this channel.", rating)), nil

	default:
		return models.NewEphemeralResponse("Unknown settings action."), nil
	}
}

func (d Deps) statsCommand() *models.Command {
	return &models.Command{
		Name:        "stats",
		Description: "Show bot usage statistics",
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			snapshot := d.Stats.Snapshot()

			type commandCount struct {
				name  string
				count int64
			}
			counts := make([]commandCount, 0, len(snapshot.CommandsLifetime))
			for name, count := range snapshot.CommandsLifetime {
				counts = append(counts, commandCount{name, count})
			}
			sort.Slice(counts, func(i, j int) bool {
				if counts[i].count != counts[j].count {
					return counts[i].count > counts[j].count
				}
				return counts[i].name < counts[j].name
			})

			var b strings.Builder
			fmt.Fprintf(&b, "**Bot statistics**\n")
			fmt.Fprintf(&b, "Commands served: %d\n", snapshot.TotalLifetime)
			fmt.Fprintf(&b, "Average per minute: %s\n", snapshot.AveragePerMinute.StringFixed(2))
			fmt.Fprintf(&b, "**Most popular commands**\n")
			for i, cc := range counts {
				if i >= 5 {
					break
				}
				fmt.Fprintf(&b, "%d. `/%s` - %d\n", i+1, cc.name, cc.count)
			}
			return models.NewEphemeralResponse(b.String()), nil
		},
	}
}

func (d Deps) pingCommand() *models.Command {
	return &models.Command{
		Name:        "ping",
		Description: "Check that the bot is alive",
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			return models.NewEphemeralResponse("🏓 Pong!"), nil
		},
	}
}

func (d Deps) helpCommand(registry *Registry) *models.Command {
	return &models.Command{
		Name:        "help",
		Description: "List all commands",
		Handler: func(ctx context.Context, interaction *models.Interaction) (*models.Response, error) {
			var b strings.Builder
			b.WriteString("**Commands**\n")
			for _, cmd := range registry.All() {
				fmt.Fprintf(&b, "`/%s` - %s\n", cmd.Name, cmd.Description)
			}
			return models.NewEphemeralResponse(b.String()), nil
		},
	}
}
