package search

import (
	"context"
	"fmt"
	"regexp"
)

const (
	DefaultPageSize   = 15
	DefaultIDPageSize = 80
	// UnboundedPageSize is large enough that every match lands on page one.
	UnboundedPageSize = 1 << 30
)

type RosterProvider interface {
	GuildMembers(guildID string) ([]Member, error)
	// RequestGuildMembers asks for a cache refresh and must not block on it.
	RequestGuildMembers(guildID string)
}

type BanProvider interface {
	GuildBans(ctx context.Context, guildID string) ([]Ban, error)
}

type Engine struct {
	roster     RosterProvider
	bans       BanProvider
	pageSize   int
	idPageSize int
}

func NewEngine(roster RosterProvider, bans BanProvider, pageSize, idPageSize int) *Engine {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if idPageSize <= 0 {
		idPageSize = DefaultIDPageSize
	}
	return &Engine{
		roster:     roster,
		bans:       bans,
		pageSize:   pageSize,
		idPageSize: idPageSize,
	}
}

func (e *Engine) PerPage(q Query) int {
	if q.PerPage > 0 {
		return q.PerPage
	}
	if q.IDsOnly {
		return e.idPageSize
	}
	return e.pageSize
}

func (e *Engine) SearchMembers(ctx context.Context, guildID string, q Query) (*Result, error) {
	_ = ctx
	re, err := CompilePattern(q.Pattern, q.CaseSensitive, q.UseRegex)
	if err != nil {
		return nil, patternError(err)
	}

	e.roster.RequestGuildMembers(guildID)
	members, err := e.roster.GuildMembers(guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild members: %w", err)
	}

	matches := make([]Candidate, 0, len(members))
	for _, m := range members {
		if matchMember(m, q, re) {
			matches = append(matches, m)
		}
	}
	return e.paginate(matches, q)
}

func (e *Engine) SearchBans(ctx context.Context, guildID string, q Query) (*Result, error) {
	re, err := CompilePattern(q.Pattern, q.CaseSensitive, q.UseRegex)
	if err != nil {
		return nil, patternError(err)
	}

	bans, err := e.bans.GuildBans(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("load guild bans: %w", err)
	}

	matches := make([]Candidate, 0, len(bans))
	for _, b := range bans {
		if re == nil || re.MatchString(b.User.Tag()) {
			matches = append(matches, b)
		}
	}
	return e.paginate(matches, q)
}

func matchMember(m Member, q Query, re *regexp.Regexp) bool {
	if len(q.Roles) > 0 && !m.hasAllRoles(q.Roles) {
		return false
	}
	if q.VoiceOnly && m.VoiceChannelID == "" {
		return false
	}
	if q.BotsOnly && !m.User.Bot {
		return false
	}
	if re == nil {
		return true
	}
	if q.StatusSearch {
		return matchActivities(m.Activities, re)
	}
	if m.Nick != "" && re.MatchString(m.Nick) {
		return true
	}
	return re.MatchString(m.User.Tag())
}

func matchActivities(activities []Activity, re *regexp.Regexp) bool {
	for _, a := range activities {
		for _, text := range a.textFields() {
			if text != "" && re.MatchString(text) {
				return true
			}
		}
	}
	return false
}

func (e *Engine) paginate(matches []Candidate, q Query) (*Result, error) {
	total := len(matches)
	if total == 0 {
		return nil, noResultsError()
	}
	SortStable(matches, candidateComparator(q.Sort))

	perPage := e.PerPage(q)
	lastPage := PageCount(total, perPage)
	page := ClampPage(q.Page, lastPage)
	start := (page - 1) * perPage
	end := min(start+perPage, total)

	return &Result{
		Items:    matches[start:end],
		Total:    total,
		Page:     page,
		LastPage: lastPage,
		PerPage:  perPage,
		From:     start + 1,
		To:       end,
	}, nil
}

// PageCount is max(1, ceil(total/perPage)).
func PageCount(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return max(1, (total+perPage-1)/perPage)
}

func ClampPage(page, lastPage int) int {
	return min(max(page, 1), max(lastPage, 1))
}
