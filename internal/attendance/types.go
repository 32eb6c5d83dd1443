package attendance

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrValidation is returned when a save is rejected before any store mutation.
var ErrValidation = errors.New("invalid attendance input")

// store handles all database operations for attendance records.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one player's intended record for a date. Players absent from a
// save's entry list are removed for that date.
type Entry struct {
	PlayerID string `json:"player_id"`
	Points   int    `json:"points"`
}

// Record is a stored attendance row, enriched with display names.
type Record struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	PlayerID        string  `json:"player_id"`
	PlayerName      string  `json:"player_name"`
	TeamID          *string `json:"team_id"`
	TeamName        string  `json:"team_name"`
	Points          int     `json:"points"`
	UpdatedByUserID string  `json:"updated_by_user_id"`
	CreatedAt       int64   `json:"created_at"`
}

// TeamSubmission is one team's share of a date's submitted records.
type TeamSubmission struct {
	TeamID   *string `json:"team_id"`
	TeamName string  `json:"team_name"`
	Count    int     `json:"count"`
}

// Filter narrows the analytics record set. Empty fields are unbounded.
type Filter struct {
	DateFrom string
	DateTo   string
	TeamID   string
}

// PlayerStats is a player's aggregated points over the filtered record set.
type PlayerStats struct {
	PlayerID        string  `json:"player_id"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	TeamName        *string `json:"team_name"`
	TotalPoints     int     `json:"total_points"`
	AttendanceCount int     `json:"attendance_count"`
}

// TeamStats is a team's aggregated points over the filtered record set.
// PlayerCount counts distinct players, not records.
type TeamStats struct {
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	TotalPoints int    `json:"total_points"`
	PlayerCount int    `json:"player_count"`
}

// Report is the analytics view: ranked player and team statistics.
type Report struct {
	Players []PlayerStats `json:"players"`
	Teams   []TeamStats   `json:"teams"`
}

// Summary is a player's recent-attendance snapshot for profile display.
type Summary struct {
	Last30DaysTotalSessions    int     `json:"last_30_days_total_sessions"`
	Last30DaysAttendedSessions int     `json:"last_30_days_attended_sessions"`
	Last30DaysAttendancePct    int     `json:"last_30_days_attendance_pct"`
	LastAttendanceDate         *string `json:"last_attendance_date"`
}

// Labels for records whose team reference is null or points at a deleted team.
const (
	noTeamLabel  = "No team"
	unknownLabel = "Unknown"

	// Analytics groups teamless players under a sentinel bucket.
	noTeamBucketID   = "no-team"
	noTeamBucketName = "No Team"
)
