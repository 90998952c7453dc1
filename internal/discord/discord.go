package discord

import (
	"context"

	"github.com/foxseedlab/rostersearch/internal/search"
)

type SlashCommandOptionType int

const (
	SlashCommandOptionString SlashCommandOptionType = iota + 1
	SlashCommandOptionBool
	SlashCommandOptionInt
)

type SlashCommandOption struct {
	Name        string
	Description string
	Type        SlashCommandOptionType
	Required    bool
}

type SlashCommandDefinition struct {
	Name        string
	Description string
	Options     []SlashCommandOption
}

// SlashCommandOptions holds the values a user supplied, keyed by option name.
// Values are string, bool or int64 depending on the option type.
type SlashCommandOptions map[string]any

func (o SlashCommandOptions) String(name string) string {
	v, _ := o[name].(string)
	return v
}

func (o SlashCommandOptions) Bool(name string) bool {
	v, _ := o[name].(bool)
	return v
}

func (o SlashCommandOptions) Int(name string) int64 {
	v, _ := o[name].(int64)
	return v
}

type SlashCommandEvent struct {
	GuildID          string
	ChannelID        string
	CommandName      string
	UserID           string
	Options          SlashCommandOptions
	RespondEphemeral func(content string) error
}

type MessageRef struct {
	ChannelID string
	MessageID string
}

type ReactionEvent struct {
	ChannelID string
	MessageID string
	UserID    string
	Emoji     string
}

// ReactionFilter scopes a reaction subscription to one message, one user and a set of emoji.
type ReactionFilter struct {
	MessageID string
	UserID    string
	Emojis    []string
}

func (f ReactionFilter) Matches(ev ReactionEvent) bool {
	if ev.MessageID != f.MessageID || ev.UserID != f.UserID {
		return false
	}
	for _, e := range f.Emojis {
		if e == ev.Emoji {
			return true
		}
	}
	return false
}

type Messenger interface {
	SendChannelMessage(channelID, content string) error
	CreateMessage(channelID, content string) (MessageRef, error)
	EditMessage(ref MessageRef, content string) error
	AddReaction(ref MessageRef, emoji string) error
	RemoveUserReaction(ref MessageRef, emoji, userID string) error
	ClearReactions(ref MessageRef) error
	// OnReactionAdd registers handler for reactions passing filter and returns its remover.
	OnReactionAdd(filter ReactionFilter, handler func(ReactionEvent)) func()
}

type Client interface {
	Messenger
	search.RosterProvider
	search.BanProvider
	Connect(ctx context.Context) error
	Close() error
	RegisterSlashCommandHandler(handler func(SlashCommandEvent))
	UpsertGuildSlashCommands(guildID string, defs []SlashCommandDefinition) error
	GetBotUserID() (string, error)
	Run() error
}
