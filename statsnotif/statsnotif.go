package statsnotif

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

var (
	instance *StatsNotifier
	once     sync.Once
)

// StatsNotifier posts server counts to the bot listing directory so the
// public listing stays current.
type StatsNotifier struct {
	token         string
	apiBase       string
	applicationID string
}

// Init initializes the global stats notifier instance
func Init(token, apiBase, applicationID string) {
	once.Do(func() {
		instance = &StatsNotifier{
			token:         token,
			apiBase:       apiBase,
			applicationID: applicationID,
		}
	})
}

// Post sends the current guild count to the listing directory
func Post(guildCount int) {
	if instance == nil {
		log.Printf("⚠️ Stats notifier not initialized, skipping post")
		return
	}
	instance.post(guildCount)
}

func (s *StatsNotifier) post(guildCount int) {
	if s.token == "" {
		return // listing stats disabled
	}

	// Send asynchronously to avoid blocking the caller
	go s.sendListingUpdate(guildCount)
}

func (s *StatsNotifier) sendListingUpdate(guildCount int) {
	payload, err := json.Marshal(map[string]any{
		"server_count": guildCount,
	})
	if err != nil {
		log.Printf("❌ Failed to marshal listing stats payload: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	url := fmt.Sprintf("%s/bots/%s/stats", s.apiBase, s.applicationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		log.Printf("❌ Failed to create listing stats request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", s.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Printf("❌ Failed to post listing stats: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("❌ Listing stats post failed with status: %d", resp.StatusCode)
		return
	}

	log.Printf("📊 Listing stats posted: %d servers", guildCount)
}
