package paranoia

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"tdbot/clients"
	"tdbot/core"
	"tdbot/models"
	"tdbot/services"
	"tdbot/services/paranoiaqueue"
)

// QuestionRevealProbability is the chance that an answered paranoia question
// is shown to the origin channel alongside the answer. The remainder of the
// time only the answer is relayed and the question stays hidden.
const QuestionRevealProbability = 0.5

type ParanoiaUseCase struct {
	queue             *paranoiaqueue.Queue
	questionsService  services.QuestionsService
	discordClient     clients.DiscordClient
	revealProbability float64
	rng               *rand.Rand
}

func NewParanoiaUseCase(
	queue *paranoiaqueue.Queue,
	questionsService services.QuestionsService,
	discordClient clients.DiscordClient,
) *ParanoiaUseCase {
	return &ParanoiaUseCase{
		queue:             queue,
		questionsService:  questionsService,
		discordClient:     discordClient,
		revealProbability: QuestionRevealProbability,
		rng:               rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithRandomness overrides the reveal probability and randomness source.
// Used by tests to force both reveal branches deterministically.
func (u *ParanoiaUseCase) WithRandomness(probability float64, rng *rand.Rand) *ParanoiaUseCase {
	u.revealProbability = probability
	u.rng = rng
	return u
}

// Ask assigns a random paranoia question to the target user. The entry is
// always enqueued; the DM notification is only sent immediately when the
// target had no pending question, otherwise it waits its turn.
func (u *ParanoiaUseCase) Ask(
	ctx context.Context,
	interaction *models.Interaction,
	targetUserID string,
	rating models.Rating,
) (*models.Response, error) {
	log.Printf("📋 Starting paranoia ask from %s to %s", interaction.UserID, targetUserID)

	question, err := u.questionsService.GetRandomQuestion(
		ctx, models.QuestionTypeParanoia, []models.Rating{rating})
	if err != nil {
		if core.IsNotFoundError(err) {
			return models.NewEphemeralResponse(
				fmt.Sprintf("No paranoia questions available for rating %s.", rating)), nil
		}
		return nil, fmt.Errorf("failed to pick paranoia question: %w", err)
	}

	entry := &models.ParanoiaEntry{
		ID:         core.NewID("pq"),
		UserID:     targetUserID,
		GuildID:    interaction.GuildID,
		ChannelID:  interaction.ChannelID,
		AskerID:    interaction.UserID,
		QuestionID: question.ID,
		Question:   question.Text,
		Rating:     question.Rating,
		CreatedAt:  time.Now(),
	}

	// Auto-deliver only when the queue was empty; a recipient with a pending
	// question keeps exactly one answerable entry at a time.
	wasIdle := !u.HasPendingQuestion(targetUserID)
	u.queue.Enqueue(entry)

	if wasIdle {
		if err := u.deliverNext(ctx, targetUserID); err != nil {
			log.Printf("⚠️ Failed to deliver paranoia question to %s: %v", targetUserID, err)
			return models.NewEphemeralResponse(
				"Question queued, but I couldn't DM the recipient. They may have DMs disabled."), nil
		}
	}

	log.Printf("📋 Completed successfully - paranoia question %s queued for %s", entry.ID, targetUserID)
	return models.NewResponse(
		fmt.Sprintf("🤫 A paranoia question has been sent to <@%s>!", targetUserID)), nil
}

// Answer resolves the caller's active paranoia question: the answer is
// relayed to the origin channel, the DM notification is marked answered, the
// entry is removed, and only then is the next pending question delivered.
func (u *ParanoiaUseCase) Answer(
	ctx context.Context,
	interaction *models.Interaction,
	answer string,
) (*models.Response, error) {
	log.Printf("📋 Starting paranoia answer from %s", interaction.UserID)

	maybeHead := u.queue.Head(interaction.UserID)
	if maybeHead.IsAbsent() {
		return models.NewEphemeralResponse("You have no paranoia question to answer right now."), nil
	}
	head := maybeHead.MustGet()

	// (a) relay the answer to the origin channel
	reveal := u.rng.Float64() < u.revealProbability
	var relayContent string
	if reveal {
		relayContent = fmt.Sprintf("**%s** answered a paranoia question:\n> %s\n**Answer:** %s",
			interaction.Username, head.Question, answer)
	} else {
		relayContent = fmt.Sprintf("**%s** answered a paranoia question:\n> They got lucky, the question stays secret!\n**Answer:** %s",
			interaction.Username, answer)
	}
	_, relayErr := u.discordClient.SendMessage(ctx, head.ChannelID, relayContent)
	if relayErr != nil {
		log.Printf("⚠️ Failed to relay paranoia answer to channel %s: %v", head.ChannelID, relayErr)
	}

	// (b) mark the DM notification answered
	if head.DMChannelID != nil && head.DMMessageID != nil {
		editContent := fmt.Sprintf("~~%s~~\n✅ Answered!", head.Question)
		if err := u.discordClient.EditMessage(ctx, *head.DMChannelID, *head.DMMessageID, editContent); err != nil {
			log.Printf("⚠️ Failed to edit paranoia notification %s: %v", *head.DMMessageID, err)
		}
	}

	// (c) remove the entry - even when the relay failed, so an unsendable
	// origin channel can never leave the recipient stuck. Removal is
	// compare-and-remove on the entry we read: a concurrent duplicate answer
	// may have resolved it already, and blindly popping the head would
	// destroy the next entry instead.
	removed := u.queue.Answer(interaction.UserID, head.ID)
	if removed.IsAbsent() {
		log.Printf("⚠️ Paranoia entry %s was already resolved for %s, skipping delivery", head.ID, interaction.UserID)
		return models.NewEphemeralResponse("That paranoia question was already answered."), nil
	}

	// (d) deliver the next pending question, strictly after removal
	if err := u.deliverNext(ctx, interaction.UserID); err != nil {
		log.Printf("⚠️ Failed to deliver next paranoia question to %s: %v", interaction.UserID, err)
	}

	if relayErr != nil {
		return models.NewEphemeralResponse(
			"Your answer was recorded, but it couldn't be delivered to the channel it came from."), nil
	}

	log.Printf("📋 Completed successfully - paranoia answer relayed for %s", interaction.UserID)
	return models.NewEphemeralResponse("✅ Your answer has been sent!"), nil
}

// HasPendingQuestion reports whether the user currently has an active entry
func (u *ParanoiaUseCase) HasPendingQuestion(userID string) bool {
	return u.queue.Head(userID).IsPresent()
}

// deliverNext DMs the recipient's current head entry and records the
// notification message. A no-op when the queue is empty. On send failure the
// entry stays queued with no delivery attached.
func (u *ParanoiaUseCase) deliverNext(ctx context.Context, userID string) error {
	maybeHead := u.queue.Head(userID)
	if maybeHead.IsAbsent() {
		return nil
	}
	head := maybeHead.MustGet()

	dmChannelID, err := u.discordClient.CreateDMChannel(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to open DM channel: %w", err)
	}

	content := fmt.Sprintf("🤫 You've been asked a paranoia question:\n> %s\nReply with `/answer` to respond.",
		head.Question)
	message, err := u.discordClient.SendMessage(ctx, dmChannelID, content)
	if err != nil {
		return fmt.Errorf("failed to send paranoia notification: %w", err)
	}

	if !u.queue.AttachDelivery(userID, head.ID, dmChannelID, message.ID) {
		log.Printf("⚠️ Paranoia entry %s was no longer head when attaching delivery", head.ID)
	}
	return nil
}
