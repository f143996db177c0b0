package models

import "time"

// ParanoiaEntry is one queued question for one recipient. Entries are owned
// exclusively by the per-recipient queue; collaborators receive them as read
// references and must only mutate them through the queue's operations.
type ParanoiaEntry struct {
	ID     string `json:"id"`
	UserID string `json:"user_id"` // recipient
	// origin of the question - where the answer gets relayed back to
	GuildID    string `json:"guild_id"`
	ChannelID  string `json:"channel_id"`
	AskerID    string `json:"asker_id"`
	QuestionID string `json:"question_id"`
	Question   string `json:"question"`
	Rating     Rating `json:"rating"`
	// DMChannelID/DMMessageID identify the "use /answer" notification message;
	// nil until the notification is actually delivered
	DMChannelID *string   `json:"dm_channel_id,omitempty"`
	DMMessageID *string   `json:"dm_message_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Delivered reports whether the recipient has been notified about this entry
func (e *ParanoiaEntry) Delivered() bool {
	return e.DMMessageID != nil
}
