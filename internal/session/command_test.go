package session

import (
	"slices"
	"testing"

	"github.com/foxseedlab/rostersearch/internal/discord"
	"github.com/foxseedlab/rostersearch/internal/search"
)

func TestSlashCommandDefinitions_MemberOnlyOptions(t *testing.T) {
	defs := SlashCommandDefinitions()
	if len(defs) != 2 {
		t.Fatalf("expected 2 commands, got %d", len(defs))
	}
	names := func(def discord.SlashCommandDefinition) []string {
		out := make([]string, 0, len(def.Options))
		for _, opt := range def.Options {
			out = append(out, opt.Name)
		}
		return out
	}
	members, bans := names(defs[0]), names(defs[1])
	for _, opt := range []string{optionStatus, optionRoles, optionVoice, optionBots} {
		if !slices.Contains(members, opt) {
			t.Fatalf("members command missing %q", opt)
		}
		if slices.Contains(bans, opt) {
			t.Fatalf("bans command should not offer %q", opt)
		}
	}
}

func TestQueryFromOptions(t *testing.T) {
	opts := discord.SlashCommandOptions{
		optionQuery:         "alice",
		optionRegex:         true,
		optionCaseSensitive: true,
		optionIDs:           true,
		optionSort:          "-ID",
		optionPage:          int64(3),
		optionRoles:         "10, 20",
		optionVoice:         true,
		optionBots:          true,
		optionStatus:        true,
	}

	q := queryFromOptions(kindMembers, opts)
	if q.Pattern != "alice" || !q.UseRegex || !q.CaseSensitive || !q.IDsOnly || q.Page != 3 {
		t.Fatalf("unexpected query: %+v", q)
	}
	if q.Sort.Key != "id" || q.Sort.Direction != search.Descending {
		t.Fatalf("unexpected sort: %+v", q.Sort)
	}
	if !slices.Equal(q.Roles, []string{"10", "20"}) || !q.VoiceOnly || !q.BotsOnly || !q.StatusSearch {
		t.Fatalf("unexpected member filters: %+v", q)
	}

	q = queryFromOptions(kindBans, opts)
	if len(q.Roles) != 0 || q.VoiceOnly || q.BotsOnly || q.StatusSearch {
		t.Fatalf("ban query should drop member filters: %+v", q)
	}
}

func TestKindForCommand(t *testing.T) {
	if k, ok := kindForCommand(commandBans); !ok || k != kindBans {
		t.Fatalf("unexpected kind: %q %v", k, ok)
	}
	if _, ok := kindForCommand("kick"); ok {
		t.Fatalf("unknown command should not resolve")
	}
}

func TestDescribeQuery(t *testing.T) {
	q := search.Query{Pattern: "bob", Roles: []string{"1", "2"}, VoiceOnly: true}
	if got := describeQuery(q); got != "query=bob roles=1,2 voice" {
		t.Fatalf("unexpected description: %q", got)
	}
}
