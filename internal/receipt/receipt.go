// Package receipt renders a printable service receipt from a ticket's read
// model. It is a consumer of the engine state, not part of the lifecycle
// core.
package receipt

import (
	"fmt"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const (
	receiptTimeLayout = "02/01/2006 15:04"
	lineWidth         = 72
	blank             = "---"
)

// RenderGeneral produces the attendance receipt as a plain-text document.
func RenderGeneral(ticket *domain.GeneralTicket, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var b strings.Builder
	rule := strings.Repeat("=", lineWidth)
	section := strings.Repeat("-", lineWidth)

	b.WriteString(rule + "\n")
	b.WriteString(center("SERVICE RECEIPT") + "\n")
	b.WriteString(rule + "\n\n")

	b.WriteString(fmt.Sprintf("TICKET: %s\n", ticket.Number))
	b.WriteString(section + "\n")
	writeField(&b, "Opened at", ticket.CreatedAt.In(loc).Format(receiptTimeLayout))
	writeField(&b, "Current status", string(ticket.Status))
	writeField(&b, "Employee", ticket.EmployeeName)
	writeField(&b, "National ID", orBlank(ticket.NationalID))
	writeField(&b, "Phone", orBlank(ticket.Phone))
	writeField(&b, "Contact channel", string(ticket.Channel))
	writeField(&b, "Category", string(ticket.Category))
	writeField(&b, "Handler", orBlank(ticket.Handler))
	writeField(&b, "Created by", orBlank(ticket.CreatedBy))
	if ticket.CompletedAt != nil {
		writeField(&b, "Completed at", ticket.CompletedAt.In(loc).Format(receiptTimeLayout))
	}
	b.WriteString("\n")

	b.WriteString("REASON / DESCRIPTION\n")
	b.WriteString(section + "\n")
	b.WriteString(ticket.Reason + "\n\n")

	b.WriteString("RESOLUTION AND CONVERSATION HISTORY\n")
	b.WriteString(section + "\n")
	if strings.TrimSpace(ticket.History) == "" {
		b.WriteString("No history recorded.\n")
	} else {
		b.WriteString(ticket.History + "\n")
	}

	b.WriteString("\n" + rule + "\n")
	b.WriteString(center("This document was generated automatically by the helpdesk system.") + "\n")
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-16s %s\n", label+":", value)
}

func orBlank(value string) string {
	if strings.TrimSpace(value) == "" {
		return blank
	}
	return value
}

func center(text string) string {
	if len(text) >= lineWidth {
		return text
	}
	pad := (lineWidth - len(text)) / 2
	return strings.Repeat(" ", pad) + text
}
