package attendance

import (
	"database/sql"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// New creates a new AttendanceStore.
func New(db *sql.DB) AttendanceStore {
	return &store{
		db: db,
	}
}

// SaveDay replaces the full set of records for a date in one transaction:
// delete-by-date, then one insert per entry. A reader never observes a mix of
// old and new rows. Concurrent saves for the same date are last-writer-wins.
func (s *store) SaveDay(date string, entries []Entry, actorUserID string) error {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be yyyy-mm-dd, got %q", ErrValidation, date)
	}
	if actorUserID == "" {
		return fmt.Errorf("%w: missing acting user", ErrValidation)
	}
	for _, e := range entries {
		if e.PlayerID == "" {
			return fmt.Errorf("%w: entry with empty player id", ErrValidation)
		}
	}

	// Entries are a mapping keyed by player: a duplicated player id keeps the
	// last value, matching map semantics on the caller side.
	byPlayer := make(map[string]int, len(entries))
	order := make([]string, 0, len(entries))
	for _, e := range entries {
		if _, seen := byPlayer[e.PlayerID]; !seen {
			order = append(order, e.PlayerID)
		}
		byPlayer[e.PlayerID] = max(0, e.Points)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin save transaction: %w", err)
	}

	// The team id is snapshotted from the player's current team at save time,
	// never from a cached value.
	teamIDs := make(map[string]*string, len(order))
	for _, playerID := range order {
		var teamID sql.NullString
		err := tx.QueryRow("SELECT team_id FROM players WHERE id = ?", playerID).Scan(&teamID)
		if err != nil {
			tx.Rollback()
			if err == sql.ErrNoRows {
				return fmt.Errorf("%w: unknown player %q", ErrValidation, playerID)
			}
			return fmt.Errorf("failed to look up player %q: %w", playerID, err)
		}
		if teamID.Valid {
			teamIDs[playerID] = &teamID.String
		}
	}

	if _, err := tx.Exec("DELETE FROM attendance WHERE date = ?", date); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear records for %s: %w", date, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO attendance (id, date, player_id, team_id, points, updated_by_user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, playerID := range order {
		if _, err := stmt.Exec(uuid.NewString(), date, playerID, teamIDs[playerID], byPlayer[playerID], actorUserID, now); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to insert record for player %q: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit save for %s: %w", date, err)
	}
	log.Info("Saved attendance for date", "date", date, "records", len(order), "actor", actorUserID)
	return nil
}

// RecordsForDate returns the records for one date, enriched with player and
// team names for display. Deleted teams render as "Unknown".
func (s *store) RecordsForDate(date string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT a.id, a.date, a.player_id, p.first_name, p.last_name, a.team_id, t.name,
			a.points, a.updated_by_user_id, a.created_at
		FROM attendance a
		JOIN players p ON a.player_id = p.id
		LEFT JOIN teams t ON a.team_id = t.id
		WHERE a.date = ?
		ORDER BY p.last_name, p.first_name`, date)
	if err != nil {
		log.Error("Failed to query records for date", "error", err, "date", date)
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		var firstName, lastName string
		var teamName sql.NullString
		if err := rows.Scan(&r.ID, &r.Date, &r.PlayerID, &firstName, &lastName, &r.TeamID, &teamName,
			&r.Points, &r.UpdatedByUserID, &r.CreatedAt); err != nil {
			log.Error("Failed to scan attendance row", "error", err)
			continue
		}
		r.PlayerName = firstName + " " + lastName
		r.TeamName = teamLabel(r.TeamID, teamName)
		records = append(records, r)
	}
	return records, rows.Err()
}

// SubmissionSummary groups records in [start, end] by date and team. Dates
// with no records are absent from the result. The per-date lists are sorted by
// team name so output is deterministic.
func (s *store) SubmissionSummary(start, end string) (map[string][]TeamSubmission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT a.date, a.team_id, t.name
		FROM attendance a
		LEFT JOIN teams t ON a.team_id = t.id
		WHERE a.date >= ? AND a.date <= ?`, start, end)
	if err != nil {
		log.Error("Failed to query submission summary", "error", err, "start", start, "end", end)
		return nil, err
	}
	defer rows.Close()

	type bucket struct {
		teamID *string
		name   string
		count  int
	}
	byDate := make(map[string]map[string]*bucket)
	for rows.Next() {
		var date string
		var teamID sql.NullString
		var teamName sql.NullString
		if err := rows.Scan(&date, &teamID, &teamName); err != nil {
			log.Error("Failed to scan submission row", "error", err)
			continue
		}
		key := "null"
		var tid *string
		if teamID.Valid {
			key = teamID.String
			tid = &teamID.String
		}
		if byDate[date] == nil {
			byDate[date] = make(map[string]*bucket)
		}
		b := byDate[date][key]
		if b == nil {
			b = &bucket{teamID: tid, name: teamLabel(tid, teamName)}
			byDate[date][key] = b
		}
		b.count++
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	summary := make(map[string][]TeamSubmission, len(byDate))
	for date, buckets := range byDate {
		subs := make([]TeamSubmission, 0, len(buckets))
		for _, b := range buckets {
			subs = append(subs, TeamSubmission{TeamID: b.teamID, TeamName: b.name, Count: b.count})
		}
		sort.Slice(subs, func(i, j int) bool { return subs[i].TeamName < subs[j].TeamName })
		summary[date] = subs
	}
	return summary, nil
}

// Analytics fetches the filtered record set in insertion order and folds it in
// application code. See buildReport for the grouping and ranking rules.
func (s *store) Analytics(filter Filter) (*Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT a.player_id, a.points, p.first_name, p.last_name, a.team_id, t.name
		FROM attendance a
		JOIN players p ON a.player_id = p.id
		LEFT JOIN teams t ON a.team_id = t.id`
	var args []any
	var where []string
	if filter.DateFrom != "" {
		where = append(where, "a.date >= ?")
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		where = append(where, "a.date <= ?")
		args = append(args, filter.DateTo)
	}
	if filter.TeamID != "" {
		where = append(where, "a.team_id = ?")
		args = append(args, filter.TeamID)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	// rowid preserves insertion order, which the ranking's stable sort relies on.
	query += " ORDER BY a.rowid"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query analytics records", "error", err)
		return nil, err
	}
	defer rows.Close()

	var recs []analyticsRow
	for rows.Next() {
		var rec analyticsRow
		var teamName sql.NullString
		if err := rows.Scan(&rec.PlayerID, &rec.Points, &rec.FirstName, &rec.LastName, &rec.TeamID, &teamName); err != nil {
			log.Error("Failed to scan analytics row", "error", err)
			continue
		}
		if teamName.Valid {
			rec.TeamName = &teamName.String
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return buildReport(recs), nil
}

// PlayerSummary computes a player's trailing 30-day snapshot. The window uses
// calendar dates, inclusive on both ends. The last attendance date is queried
// separately across all time.
func (s *store) PlayerSummary(playerID string, now time.Time) (*Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	windowStart := now.AddDate(0, 0, -30).Format(dateLayout)
	windowEnd := now.Format(dateLayout)

	rows, err := s.db.Query(`
		SELECT points FROM attendance
		WHERE player_id = ? AND date >= ? AND date <= ?`, playerID, windowStart, windowEnd)
	if err != nil {
		log.Error("Failed to query player summary window", "error", err, "playerID", playerID)
		return nil, err
	}
	defer rows.Close()

	summary := &Summary{}
	for rows.Next() {
		var points int
		if err := rows.Scan(&points); err != nil {
			log.Error("Failed to scan summary row", "error", err)
			continue
		}
		summary.Last30DaysTotalSessions++
		if points > 0 {
			summary.Last30DaysAttendedSessions++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if summary.Last30DaysTotalSessions > 0 {
		summary.Last30DaysAttendancePct = int(math.Round(
			float64(summary.Last30DaysAttendedSessions) / float64(summary.Last30DaysTotalSessions) * 100))
	}

	var lastDate string
	err = s.db.QueryRow(`
		SELECT date FROM attendance WHERE player_id = ?
		ORDER BY date DESC LIMIT 1`, playerID).Scan(&lastDate)
	switch err {
	case nil:
		summary.LastAttendanceDate = &lastDate
	case sql.ErrNoRows:
		// Player has never attended; the date stays null.
	default:
		log.Error("Failed to query last attendance date", "error", err, "playerID", playerID)
		return nil, err
	}
	return summary, nil
}

// teamLabel resolves a display name for an attendance row's team reference.
func teamLabel(teamID *string, joined sql.NullString) string {
	if teamID == nil {
		return noTeamLabel
	}
	if joined.Valid {
		return joined.String
	}
	// The team id was snapshotted at write time and the team has since been
	// deleted.
	return unknownLabel
}
