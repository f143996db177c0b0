package middleware

import (
	"crypto/md5"
	"fmt"
	"log"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/slack-go/slack"
)

type SlackAlertConfig struct {
	WebhookURL  string
	Environment string
	AppName     string
	LogsURL     string
}

// ErrorAlertMiddleware forwards handler failures and HTTP panics to a Slack
// webhook, deduplicated so a repeating error alerts at most once per cooldown.
type ErrorAlertMiddleware struct {
	config        SlackAlertConfig
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration
}

func NewErrorAlertMiddleware(config SlackAlertConfig) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // Don't alert same error more than once per 10min
	}
}

// HTTPMiddleware wraps HTTP handlers so a panic in any endpoint is alerted
// instead of killing the connection silently
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				errorMsg := fmt.Sprintf("HTTP %s %s: PANIC - %v", r.Method, r.URL.Path, rec)
				log.Printf("❌ %s", errorMsg)
				go m.sendSlackAlert(errorMsg, fmt.Sprintf("HTTP %s %s (PANIC)", r.Method, r.URL.Path))
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// ReportError is the dispatch pipeline's failure sink. Fields carry the
// interaction metadata (caller, command, options, request id).
func (m *ErrorAlertMiddleware) ReportError(err error, context string, fields map[string]string) {
	errorMsg := fmt.Sprintf("%s: %v", context, err)
	if len(fields) > 0 {
		errorMsg = fmt.Sprintf("%s %s", errorMsg, renderFields(fields))
	}

	// Hash of error for deduplication
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return // Skip alert - too recent
		}
	}

	// Send alert asynchronously
	go m.sendSlackAlert(errorMsg, context)
	m.alertedErrors[hash] = time.Now()
}

func renderFields(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rendered := "("
	for i, key := range keys {
		if i > 0 {
			rendered += ", "
		}
		rendered += fmt.Sprintf("%s=%s", key, fields[key])
	}
	return rendered + ")"
}

func (m *ErrorAlertMiddleware) sendSlackAlert(errorMsg, context string) {
	if m.config.WebhookURL == "" {
		return // Slack alerts disabled
	}

	envPrefix := ""
	if m.config.Environment == "dev" {
		envPrefix = "[dev] "
	}

	message := &slack.WebhookMessage{
		Blocks: &slack.Blocks{
			BlockSet: []slack.Block{
				slack.NewHeaderBlock(slack.NewTextBlockObject(
					slack.PlainTextType,
					fmt.Sprintf("🚨 %s%s Error Alert", envPrefix, m.config.AppName),
					true, false)),
				slack.NewSectionBlock(nil, []*slack.TextBlockObject{
					slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Service:* %s", m.config.AppName), false, false),
					slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Environment:* %s", m.config.Environment), false, false),
					slack.NewTextBlockObject(slack.MarkdownType, fmt.Sprintf("*Context:* %s", context), false, false),
				}, nil),
				slack.NewSectionBlock(slack.NewTextBlockObject(
					slack.MarkdownType,
					fmt.Sprintf("*Error:*\n```%s```", errorMsg),
					false, false), nil, nil),
				slack.NewSectionBlock(slack.NewTextBlockObject(
					slack.MarkdownType,
					fmt.Sprintf("🔗 <%s|View Logs>", m.config.LogsURL),
					false, false), nil, nil),
			},
		},
	}

	if err := slack.PostWebhook(m.config.WebhookURL, message); err != nil {
		log.Printf("❌ Failed to send Slack alert: %v", err)
	}
}
