package session

import (
	"fmt"

	"github.com/foxseedlab/rostersearch/internal/search"
)

const (
	emojiPrevPage = "⬅"
	emojiNextPage = "➡"
	emojiRefresh  = "🔄"

	messageSearching = "Searching…"

	messageEphemeralWrongGuild     = ":warning: **This command cannot be used in this server.**"
	messageEphemeralUnknownCommand = ":warning: **Unknown command.**"
	messageEphemeralSearchStarted  = ":mag: **Search started.** Results will be posted in this channel."
	messageEphemeralExportStarted  = ":mag: **Export started.** The archive link will be posted in this channel."

	messageFoundFormat   = "Found %d matching %s"
	messagePageFormat    = "Page %d (%d-%d) (total %d)"
	messageArchiveFormat = "Found %d matching %s: %s\n-# This link expires in %s."
)

var controlEmojis = []string{emojiPrevPage, emojiNextPage, emojiRefresh}

func errorMessage(text string) string {
	return ":warning: " + text
}

func resultHeader(noun string, r *search.Result) string {
	if r.FitsOnePage() {
		return fmt.Sprintf(messageFoundFormat, r.Total, noun)
	}
	return fmt.Sprintf(messagePageFormat, r.Page, r.From, r.To, r.Total)
}

func renderResult(noun string, r *search.Result, idsOnly bool) string {
	return resultHeader(noun, r) + "\n```\n" + search.Format(r.Items, idsOnly) + "\n```"
}
