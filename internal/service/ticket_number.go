package service

import (
	"fmt"
	"math/rand"
	"time"
)

// GenerateTicketNumber builds a human-readable ticket number of the form
// PREFIX-YYYYMMDD-NNNN. The date is the calendar date in the display
// timezone; the suffix is random, so callers must check the store for
// collisions before persisting.
func GenerateTicketNumber(prefix string, localDate time.Time) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, localDate.Format("20060102"), 1000+rand.Intn(9000))
}
