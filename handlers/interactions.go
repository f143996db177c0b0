package handlers

import (
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"tdbot/appctx"
	"tdbot/core"
	"tdbot/models"
	"tdbot/usecases/interactions"
)

// InteractionsHandler terminates the inbound interaction webhook: signature
// verification, ping handshake, payload mapping, dispatch, reply encoding.
type InteractionsHandler struct {
	router    *interactions.InteractionsUseCase
	publicKey ed25519.PublicKey
}

func NewInteractionsHandler(router *interactions.InteractionsUseCase, publicKeyHex string) (*InteractionsHandler, error) {
	raw, err := hex.DecodeString(publicKeyHex)
	if err != nil {
		return nil, fmt.Errorf("failed to decode interaction public key: %w", err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("interaction public key has wrong length: %d", len(raw))
	}
	return &InteractionsHandler{
		router:    router,
		publicKey: ed25519.PublicKey(raw),
	}, nil
}

// HandleInteraction is the POST /interactions endpoint
func (h *InteractionsHandler) HandleInteraction(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, h.publicKey) {
		log.Printf("⚠️ Rejected interaction with invalid signature from %s", r.RemoteAddr)
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	var event discordgo.Interaction
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		log.Printf("⚠️ Failed to decode interaction payload: %v", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	// the platform's liveness handshake
	if event.Type == discordgo.InteractionPing {
		writeInteractionResponse(w, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponsePong,
		})
		return
	}

	interaction, err := mapToInteraction(&event)
	if err != nil {
		log.Printf("⚠️ Unsupported interaction: %v", err)
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
		return
	}

	ctx := appctx.SetRequestID(r.Context(), core.NewID("req"))
	response := h.router.Route(ctx, interaction)

	data := &discordgo.InteractionResponseData{Content: response.Content}
	if response.Ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	writeInteractionResponse(w, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}

// mapToInteraction converts the platform payload into the internal
// interaction model
func mapToInteraction(event *discordgo.Interaction) (*models.Interaction, error) {
	interaction := &models.Interaction{
		GuildID:   event.GuildID,
		ChannelID: event.ChannelID,
	}

	if event.Member != nil && event.Member.User != nil {
		interaction.UserID = event.Member.User.ID
		interaction.Username = event.Member.User.Username
		permissions := event.Member.Permissions
		interaction.Permissions = &permissions
	} else if event.User != nil {
		interaction.UserID = event.User.ID
		interaction.Username = event.User.Username
	} else {
		return nil, fmt.Errorf("interaction has no user")
	}

	switch event.Type {
	case discordgo.InteractionApplicationCommand:
		data := event.ApplicationCommandData()
		interaction.Kind = models.InteractionKindCommand
		interaction.Command = data.Name
		interaction.Options = make(map[string]any, len(data.Options))
		for _, option := range data.Options {
			interaction.Options[option.Name] = option.Value
		}
	case discordgo.InteractionMessageComponent:
		data := event.MessageComponentData()
		interaction.Kind = models.InteractionKindComponent
		interaction.CustomID = data.CustomID
	default:
		return nil, fmt.Errorf("unhandled interaction type: %d", event.Type)
	}

	return interaction, nil
}

func writeInteractionResponse(w http.ResponseWriter, response *discordgo.InteractionResponse) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("❌ Failed to encode interaction response: %v", err)
	}
}
