package models

import "context"

// CommandHandler executes one command against its interaction context
type CommandHandler func(ctx context.Context, interaction *Interaction) (*Response, error)

// OptionType is the value type of a command option
type OptionType string

const (
	OptionTypeString OptionType = "string"
	OptionTypeUser   OptionType = "user"
)

// OptionChoice is one enumerated value a command option accepts
type OptionChoice struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// CommandOption describes one typed option of a command's schema
type CommandOption struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Type        OptionType     `json:"type"`
	Required    bool           `json:"required"`
	Choices     []OptionChoice `json:"choices,omitempty"`
}

// Command is a static command descriptor. Registered once at startup,
// immutable thereafter.
type Command struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Options     []CommandOption `json:"options,omitempty"`
	// RequiredPermissions is the capability bitmask a caller needs in the
	// originating guild context; zero means anyone can run the command
	RequiredPermissions int64          `json:"required_permissions"`
	Handler             CommandHandler `json:"-"`
}
