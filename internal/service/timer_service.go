package service

import (
	"fmt"
	"log"
	"time"
)

// CalculateDuration returns the whole minutes elapsed between entry
// and exit (floored). Returns 0 and logs when either timestamp is
// missing; the caller guarantees exit >= entry.
func CalculateDuration(entry, exit *time.Time) int {
	if entry == nil || exit == nil {
		log.Println("Duration calculation: entry or exit time not set")
		return 0
	}
	return int(exit.Sub(*entry) / time.Minute)
}

// FormatDuration renders minutes as "{h}h {m}m".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
