package attendance

import "time"

// AttendanceStore defines the interface for reading and writing attendance
// records and their derived statistics.
type AttendanceStore interface {
	// SaveDay atomically replaces all records for a date with the given
	// entries, stamped with the acting user and each player's current team.
	SaveDay(date string, entries []Entry, actorUserID string) error
	RecordsForDate(date string) ([]Record, error)
	// SubmissionSummary maps each date in [start, end] with at least one
	// record to its per-team submission counts.
	SubmissionSummary(start, end string) (map[string][]TeamSubmission, error)
	Analytics(filter Filter) (*Report, error)
	PlayerSummary(playerID string, now time.Time) (*Summary, error)
}
