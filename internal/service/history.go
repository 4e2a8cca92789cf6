package service

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// historyTimeLayout renders history timestamps in the display timezone.
const historyTimeLayout = "02/01/2006 15:04"

// History blocks are pure concatenation onto the existing text. The prior
// content is never touched, so the full history stays a byte-for-byte
// prefix of every later version (except through the privileged correction
// path, which replaces it wholesale).

func interactionBlock(author, text string, ts time.Time) string {
	return fmt.Sprintf("\n\n**[%s] %s wrote:**\n%s\n___", ts.Format(historyTimeLayout), author, text)
}

func statusChangeBlock(from, to domain.Status, author string, ts time.Time) string {
	return fmt.Sprintf("\n\n*Status changed from %s to %s by %s at %s*",
		from, to, author, ts.Format(historyTimeLayout))
}

func reopenBlock(author string, ts time.Time) string {
	return fmt.Sprintf("\n\n--- REOPENED by %s at %s ---", author, ts.Format(historyTimeLayout))
}

func textPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	cut := max - 3
	ellipsis := "..."
	if max <= 3 {
		cut = max
		ellipsis = ""
	}
	// back off to a rune boundary so the cut never splits a UTF-8 sequence
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return body[:cut] + ellipsis
}
