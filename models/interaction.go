package models

// InteractionKind classifies an inbound webhook event
type InteractionKind string

const (
	InteractionKindCommand   InteractionKind = "command"
	InteractionKindComponent InteractionKind = "component"
)

// Interaction is one inbound webhook event representing a user command or
// UI-component activation. It lives for a single request-response cycle.
type Interaction struct {
	Kind     InteractionKind `json:"kind"`
	UserID   string          `json:"user_id"`
	Username string          `json:"username"`
	// GuildID and Permissions are empty/nil when the interaction originates
	// from a direct message
	GuildID     string         `json:"guild_id,omitempty"`
	ChannelID   string         `json:"channel_id"`
	Permissions *int64         `json:"permissions,omitempty"`
	Command     string         `json:"command,omitempty"`
	Options     map[string]any `json:"options,omitempty"`
	CustomID    string         `json:"custom_id,omitempty"`
}

// IsDM reports whether the interaction originates outside a guild
func (i *Interaction) IsDM() bool {
	return i.GuildID == ""
}

// StringOption returns the named string option if present
func (i *Interaction) StringOption(name string) (string, bool) {
	v, ok := i.Options[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Response is the user-visible reply produced for one interaction
type Response struct {
	Content   string `json:"content"`
	Ephemeral bool   `json:"ephemeral"`
}

// NewResponse builds a channel-visible response
func NewResponse(content string) *Response {
	return &Response{Content: content}
}

// NewEphemeralResponse builds a response only the caller can see
func NewEphemeralResponse(content string) *Response {
	return &Response{Content: content, Ephemeral: true}
}
