package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/samber/mo"

	"tdbot/appctx"
	"tdbot/models"
	"tdbot/permissions"
	"tdbot/services"
	"tdbot/services/stats"
)

// RateLimiter is the admission-control dependency of the router
type RateLimiter interface {
	Allow(key string) bool
}

// ErrorTracker receives handler failures with contextual metadata
type ErrorTracker interface {
	ReportError(err error, context string, fields map[string]string)
}

// ComponentHandler handles one UI-component interaction family, keyed by the
// custom-id prefix before the first ':'
type ComponentHandler func(ctx context.Context, interaction *models.Interaction) (*models.Response, error)

// CommandSource is the read side of the command registry
type CommandSource interface {
	Get(name string) mo.Option[*models.Command]
}

// muteExemptCommands must remain usable while a channel is muted. This is an
// explicit, enumerated policy - a muted channel would otherwise be stuck with
// no way to unmute itself.
var muteExemptCommands = map[string]bool{
	"settings": true,
}

const (
	rateLimitedMessage    = "🐢 Slow down! You're sending commands too quickly."
	mutedChannelMessage   = "🔇 I'm muted in this channel. A moderator can unmute me with `/settings`."
	genericFailureMessage = "😵 Something went wrong running that command. The error has been reported."
)

// InteractionsUseCase is the top-level dispatch pipeline for inbound
// interactions. Route never lets a failure escape: every path terminates in
// a user-visible reply.
type InteractionsUseCase struct {
	limiter           RateLimiter
	channelSettings   services.ChannelSettingsService
	registry          CommandSource
	statsCollector    *stats.Collector
	tracker           ErrorTracker
	componentHandlers map[string]ComponentHandler
}

func NewInteractionsUseCase(
	limiter RateLimiter,
	channelSettings services.ChannelSettingsService,
	registry CommandSource,
	statsCollector *stats.Collector,
	tracker ErrorTracker,
) *InteractionsUseCase {
	return &InteractionsUseCase{
		limiter:           limiter,
		channelSettings:   channelSettings,
		registry:          registry,
		statsCollector:    statsCollector,
		tracker:           tracker,
		componentHandlers: make(map[string]ComponentHandler),
	}
}

// RegisterComponentHandler wires one component family. Startup-time only.
func (u *InteractionsUseCase) RegisterComponentHandler(prefix string, handler ComponentHandler) {
	u.componentHandlers[prefix] = handler
}

// Route runs one interaction through the pipeline: admission, mute gate,
// classification, permission gate, isolated handler execution, stats.
func (u *InteractionsUseCase) Route(ctx context.Context, interaction *models.Interaction) *models.Response {
	// Admission first: the cheapest rejection path does no further work,
	// not even a stats update.
	if !u.limiter.Allow(interaction.UserID) {
		log.Printf("⚠️ Rate limited interaction from user %s", interaction.UserID)
		return models.NewEphemeralResponse(rateLimitedMessage)
	}

	// Mute gate, before stats so muted channels don't pollute usage counts.
	// Settings are fetched fresh per interaction.
	if !interaction.IsDM() {
		settings, err := u.channelSettings.GetChannelSettings(ctx, interaction.GuildID, interaction.ChannelID)
		if err != nil {
			// fail open: a settings-store outage must not take the bot down
			log.Printf("⚠️ Failed to fetch channel settings for %s: %v", interaction.ChannelID, err)
		} else if settings.Muted && !muteExemptCommands[interaction.Command] {
			return models.NewEphemeralResponse(mutedChannelMessage)
		}
	}

	switch interaction.Kind {
	case models.InteractionKindCommand:
		return u.routeCommand(ctx, interaction)
	case models.InteractionKindComponent:
		return u.routeComponent(ctx, interaction)
	default:
		log.Printf("❌ Unknown interaction kind: %s", interaction.Kind)
		return models.NewEphemeralResponse(genericFailureMessage)
	}
}

func (u *InteractionsUseCase) routeCommand(ctx context.Context, interaction *models.Interaction) *models.Response {
	maybeCmd := u.registry.Get(interaction.Command)
	if maybeCmd.IsAbsent() {
		// a command Discord knows about but we don't is a configuration
		// error, not a user mistake
		log.Printf("❌ Received unregistered command: %s", interaction.Command)
		return models.NewEphemeralResponse(genericFailureMessage)
	}
	cmd := maybeCmd.MustGet()

	allowed, missingNames := permissions.Check(cmd.RequiredPermissions, interaction.Permissions)
	if !allowed {
		return models.NewEphemeralResponse(fmt.Sprintf(
			"You're missing the following permissions to use this command: %s.",
			strings.Join(missingNames, ", ")))
	}

	// The command is confirmed dispatchable: count it now, before execution,
	// so a crashing handler still contributes to load accounting.
	u.statsCollector.RecordDispatch(cmd.Name)

	response, err := u.executeIsolated(func() (*models.Response, error) {
		return cmd.Handler(ctx, interaction)
	})
	if err != nil {
		u.reportFailure(ctx, interaction, err)
		u.statsCollector.RecordFailure()
		return models.NewEphemeralResponse(genericFailureMessage)
	}

	u.statsCollector.RecordSuccess()
	return response
}

func (u *InteractionsUseCase) routeComponent(ctx context.Context, interaction *models.Interaction) *models.Response {
	prefix, _, _ := strings.Cut(interaction.CustomID, ":")
	handler, ok := u.componentHandlers[prefix]
	if !ok {
		log.Printf("⚠️ No handler for component custom id: %s", interaction.CustomID)
		return models.NewEphemeralResponse("That button isn't active anymore.")
	}

	response, err := u.executeIsolated(func() (*models.Response, error) {
		return handler(ctx, interaction)
	})
	if err != nil {
		u.reportFailure(ctx, interaction, err)
		return models.NewEphemeralResponse(genericFailureMessage)
	}
	return response
}

// executeIsolated invokes a handler and converts panics into errors so that
// no failure can cross the router boundary.
func (u *InteractionsUseCase) executeIsolated(
	invoke func() (*models.Response, error),
) (response *models.Response, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()

	response, err = invoke()
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, fmt.Errorf("handler returned no response")
	}
	return response, nil
}

func (u *InteractionsUseCase) reportFailure(ctx context.Context, interaction *models.Interaction, err error) {
	fields := map[string]string{
		"user_id":    interaction.UserID,
		"username":   interaction.Username,
		"guild_id":   interaction.GuildID,
		"channel_id": interaction.ChannelID,
	}
	if requestID, ok := appctx.GetRequestID(ctx); ok {
		fields["request_id"] = requestID
	}
	if options, marshalErr := json.Marshal(interaction.Options); marshalErr == nil {
		fields["options"] = string(options)
	}

	subject := "command /" + interaction.Command
	if interaction.Kind == models.InteractionKindComponent {
		subject = "component " + interaction.CustomID
	}

	log.Printf("❌ Handler failure for %s: %v", subject, err)
	u.tracker.ReportError(err, subject, fields)
}
