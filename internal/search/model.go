package search

import "strings"

type User struct {
	ID            string
	Username      string
	Discriminator string
	Bot           bool
}

// Tag renders the legacy "username#discriminator" composite.
func (u User) Tag() string {
	return u.Username + "#" + u.Discriminator
}

type Activity struct {
	Name      string
	State     string
	Details   string
	SmallText string
	LargeText string
	EmojiName string
}

func (a Activity) textFields() []string {
	return []string{a.Name, a.State, a.Details, a.SmallText, a.LargeText, a.EmojiName}
}

// Candidate is a member or a ban record a search runs over.
type Candidate interface {
	Identity() User
	Nickname() string
}

type Member struct {
	User           User
	Nick           string
	Roles          []string
	VoiceChannelID string
	Activities     []Activity
}

func (m Member) Identity() User   { return m.User }
func (m Member) Nickname() string { return m.Nick }

func (m Member) hasAllRoles(roleIDs []string) bool {
	for _, want := range roleIDs {
		found := false
		for _, have := range m.Roles {
			if have == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type Ban struct {
	User   User
	Reason string
}

func (b Ban) Identity() User   { return b.User }
func (b Ban) Nickname() string { return "" }

type Query struct {
	Pattern       string
	UseRegex      bool
	CaseSensitive bool
	StatusSearch  bool
	IDsOnly       bool
	Roles         []string
	VoiceOnly     bool
	BotsOnly      bool
	Sort          SortSpec
	Page          int
	PerPage       int
}

type Result struct {
	Items    []Candidate
	Total    int
	Page     int
	LastPage int
	PerPage  int
	From     int
	To       int
}

// FitsOnePage reports whether every match is on the current page.
func (r *Result) FitsOnePage() bool {
	return r.LastPage <= 1
}

// ParseRoles splits a comma-separated role id list, dropping blanks.
func ParseRoles(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		roles = append(roles, p)
	}
	return roles
}
