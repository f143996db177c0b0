package commands

import (
	"context"
	"fmt"
	"log"

	"tdbot/clients"
	"tdbot/models"
)

// SyncCommands reconciles the registry against the platform's currently
// registered command list and bulk re-publishes only when they differ.
// Startup-time idempotence check; never part of the per-request path.
func (r *Registry) SyncCommands(ctx context.Context, discordClient clients.DiscordClient) error {
	log.Printf("📋 Starting to sync application commands")

	registered, err := discordClient.RegisteredCommandNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list registered commands: %w", err)
	}

	if sameNameSet(registered, r.Names()) {
		log.Printf("✅ Application commands are up to date (%d commands)", len(registered))
		return nil
	}

	log.Printf("🚀 Publishing %d application commands (platform had %d)", len(r.order), len(registered))
	payload := make([]clients.ApplicationCommand, 0, len(r.order))
	for _, cmd := range r.All() {
		payload = append(payload, mapToPublishPayload(cmd))
	}

	if err := discordClient.OverwriteCommands(ctx, payload); err != nil {
		return fmt.Errorf("failed to publish commands: %w", err)
	}

	log.Printf("✅ Application commands published successfully")
	return nil
}

func sameNameSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, name := range a {
		seen[name] = true
	}
	for _, name := range b {
		if !seen[name] {
			return false
		}
	}
	return true
}

// mapToPublishPayload converts one descriptor into the client publish type
func mapToPublishPayload(cmd *models.Command) clients.ApplicationCommand {
	options := make([]clients.ApplicationCommandOption, 0, len(cmd.Options))
	for _, opt := range cmd.Options {
		choices := make([]clients.ApplicationCommandOptionChoice, 0, len(opt.Choices))
		for _, choice := range opt.Choices {
			choices = append(choices, clients.ApplicationCommandOptionChoice{
				Name:  choice.Name,
				Value: choice.Value,
			})
		}
		options = append(options, clients.ApplicationCommandOption{
			Type:        string(opt.Type),
			Name:        opt.Name,
			Description: opt.Description,
			Required:    opt.Required,
			Choices:     choices,
		})
	}

	return clients.ApplicationCommand{
		Name:        cmd.Name,
		Description: cmd.Description,
		Options:     options,
	}
}
