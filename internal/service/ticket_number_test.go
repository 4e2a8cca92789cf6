package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGenerateTicketNumberFormat(t *testing.T) {
	date := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	pattern := regexp.MustCompile(`^ATD-20260310-\d{4}$`)

	for i := 0; i < 50; i++ {
		number := GenerateTicketNumber("ATD", date)
		assert.Regexp(t, pattern, number)
	}
}

func TestGenerateTicketNumberUsesPrefix(t *testing.T) {
	date := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Regexp(t, regexp.MustCompile(`^INT-20260102-\d{4}$`), GenerateTicketNumber("INT", date))
}
