package session

import (
	"strings"

	"github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/search"
)

type searchKind string

const (
	kindMembers searchKind = "members"
	kindBans    searchKind = "bans"

	commandMembers = "members"
	commandBans    = "bans"

	optionQuery         = "query"
	optionRegex         = "regex"
	optionCaseSensitive = "case_sensitive"
	optionStatus        = "status"
	optionIDs           = "ids"
	optionRoles         = "roles"
	optionVoice         = "voice"
	optionBots          = "bots"
	optionSort          = "sort"
	optionPage          = "page"
	optionArchive       = "archive"
)

func (k searchKind) noun() string {
	return string(k)
}

func commonOptions() []discord.SlashCommandOption {
	return []discord.SlashCommandOption{
		{Name: optionQuery, Description: "Text to match against names", Type: discord.SlashCommandOptionString},
		{Name: optionRegex, Description: "Treat the query as a regular expression", Type: discord.SlashCommandOptionBool},
		{Name: optionCaseSensitive, Description: "Match letter case exactly", Type: discord.SlashCommandOptionBool},
		{Name: optionIDs, Description: "Only list ids", Type: discord.SlashCommandOptionBool},
		{Name: optionSort, Description: "Sort key, prefix with - for descending (name, id)", Type: discord.SlashCommandOptionString},
		{Name: optionPage, Description: "Page to open", Type: discord.SlashCommandOptionInt},
		{Name: optionArchive, Description: "Export every result to an archive link", Type: discord.SlashCommandOptionBool},
	}
}

func SlashCommandDefinitions() []discord.SlashCommandDefinition {
	memberOptions := append(commonOptions(),
		discord.SlashCommandOption{Name: optionStatus, Description: "Match the query against activity and custom status", Type: discord.SlashCommandOptionBool},
		discord.SlashCommandOption{Name: optionRoles, Description: "Comma-separated role ids every result must have", Type: discord.SlashCommandOptionString},
		discord.SlashCommandOption{Name: optionVoice, Description: "Only members connected to voice", Type: discord.SlashCommandOptionBool},
		discord.SlashCommandOption{Name: optionBots, Description: "Only bot accounts", Type: discord.SlashCommandOptionBool},
	)
	return []discord.SlashCommandDefinition{
		{Name: commandMembers, Description: "Search guild members", Options: memberOptions},
		{Name: commandBans, Description: "Search banned users", Options: commonOptions()},
	}
}

func kindForCommand(name string) (searchKind, bool) {
	switch name {
	case commandMembers:
		return kindMembers, true
	case commandBans:
		return kindBans, true
	default:
		return "", false
	}
}

// queryFromOptions builds a query; member-only filters are ignored for ban searches.
func queryFromOptions(kind searchKind, opts discord.SlashCommandOptions) search.Query {
	q := search.Query{
		Pattern:       opts.String(optionQuery),
		UseRegex:      opts.Bool(optionRegex),
		CaseSensitive: opts.Bool(optionCaseSensitive),
		IDsOnly:       opts.Bool(optionIDs),
		Sort:          search.ParseSortSpec(opts.String(optionSort)),
		Page:          int(opts.Int(optionPage)),
	}
	if kind == kindMembers {
		q.StatusSearch = opts.Bool(optionStatus)
		q.Roles = search.ParseRoles(opts.String(optionRoles))
		q.VoiceOnly = opts.Bool(optionVoice)
		q.BotsOnly = opts.Bool(optionBots)
	}
	return q
}

func describeQuery(q search.Query) string {
	parts := make([]string, 0, 4)
	if q.Pattern != "" {
		parts = append(parts, "query="+q.Pattern)
	}
	if len(q.Roles) > 0 {
		parts = append(parts, "roles="+strings.Join(q.Roles, ","))
	}
	if q.VoiceOnly {
		parts = append(parts, "voice")
	}
	if q.BotsOnly {
		parts = append(parts, "bots")
	}
	return strings.Join(parts, " ")
}
