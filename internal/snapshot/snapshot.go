package snapshot

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshot is a full copy of the academy's data, serialized with msgpack for
// offline backup and restore. Rows are carried verbatim, including password
// hashes and JSON-encoded list columns, so a restore reproduces the store
// exactly.
type Snapshot struct {
	Version    int             `msgpack:"version"`
	TakenAt    int64           `msgpack:"taken_at"`
	Users      []UserRow       `msgpack:"users"`
	Teams      []TeamRow       `msgpack:"teams"`
	Positions  []PositionRow   `msgpack:"positions"`
	Players    []PlayerRow     `msgpack:"players"`
	Attendance []AttendanceRow `msgpack:"attendance"`
}

const currentVersion = 1

type UserRow struct {
	ID              string  `msgpack:"id"`
	Name            string  `msgpack:"name"`
	Email           string  `msgpack:"email"`
	PasswordHash    string  `msgpack:"password_hash"`
	ContactNumber   *string `msgpack:"contact_number"`
	Role            string  `msgpack:"role"`
	ProfileImageURL *string `msgpack:"profile_image_url"`
	CreatedAt       int64   `msgpack:"created_at"`
}

type TeamRow struct {
	ID               string  `msgpack:"id"`
	Name             string  `msgpack:"name"`
	MainCoachID      *string `msgpack:"main_coach_id"`
	CoachIDsJSON     string  `msgpack:"coach_ids_json"`
	VolunteerIDsJSON string  `msgpack:"volunteer_ids_json"`
	Notes            *string `msgpack:"notes"`
	CreatedAt        int64   `msgpack:"created_at"`
}

type PositionRow struct {
	ID        string `msgpack:"id"`
	Name      string `msgpack:"name"`
	SortOrder int    `msgpack:"sort_order"`
	CreatedAt int64  `msgpack:"created_at"`
}

type PlayerRow struct {
	ID                           string  `msgpack:"id"`
	FirstName                    string  `msgpack:"first_name"`
	LastName                     string  `msgpack:"last_name"`
	PreferredName                *string `msgpack:"preferred_name"`
	DOB                          string  `msgpack:"dob"`
	PositionsJSON                string  `msgpack:"positions_json"`
	TeamID                       *string `msgpack:"team_id"`
	JerseyNumber                 *int    `msgpack:"jersey_number"`
	ContactNumber                *string `msgpack:"contact_number"`
	GuardianName                 *string `msgpack:"guardian_name"`
	GuardianRelationship         *string `msgpack:"guardian_relationship"`
	GuardianPhone                *string `msgpack:"guardian_phone"`
	GuardianEmail                *string `msgpack:"guardian_email"`
	EmergencyContactName         *string `msgpack:"emergency_contact_name"`
	EmergencyContactRelationship *string `msgpack:"emergency_contact_relationship"`
	EmergencyContactPhone        *string `msgpack:"emergency_contact_phone"`
	DominantFoot                 *string `msgpack:"dominant_foot"`
	MedicalNotes                 *string `msgpack:"medical_notes"`
	InjuryStatus                 string  `msgpack:"injury_status"`
	MedicationNotes              *string `msgpack:"medication_notes"`
	Strengths                    *string `msgpack:"strengths"`
	DevelopmentFocus             *string `msgpack:"development_focus"`
	CoachSummary                 *string `msgpack:"coach_summary"`
	Notes                        *string `msgpack:"notes"`
	ProfileImageURL              *string `msgpack:"profile_image_url"`
	CreatedAt                    int64   `msgpack:"created_at"`
}

type AttendanceRow struct {
	ID              string  `msgpack:"id"`
	Date            string  `msgpack:"date"`
	PlayerID        string  `msgpack:"player_id"`
	TeamID          *string `msgpack:"team_id"`
	Points          int     `msgpack:"points"`
	UpdatedByUserID string  `msgpack:"updated_by_user_id"`
	CreatedAt       int64   `msgpack:"created_at"`
}

// Export reads every table and returns the msgpack-encoded snapshot.
func Export(db *sql.DB) ([]byte, error) {
	snap := Snapshot{
		Version: currentVersion,
		TakenAt: time.Now().Unix(),
	}

	if err := collect(db, "SELECT id, name, email, password_hash, contact_number, role, profile_image_url, created_at FROM users",
		func(s scanner) error {
			var r UserRow
			if err := s.Scan(&r.ID, &r.Name, &r.Email, &r.PasswordHash, &r.ContactNumber, &r.Role, &r.ProfileImageURL, &r.CreatedAt); err != nil {
				return err
			}
			snap.Users = append(snap.Users, r)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}

	if err := collect(db, "SELECT id, name, main_coach_id, coach_ids_json, volunteer_ids_json, notes, created_at FROM teams",
		func(s scanner) error {
			var r TeamRow
			if err := s.Scan(&r.ID, &r.Name, &r.MainCoachID, &r.CoachIDsJSON, &r.VolunteerIDsJSON, &r.Notes, &r.CreatedAt); err != nil {
				return err
			}
			snap.Teams = append(snap.Teams, r)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("failed to export teams: %w", err)
	}

	if err := collect(db, "SELECT id, name, sort_order, created_at FROM positions",
		func(s scanner) error {
			var r PositionRow
			if err := s.Scan(&r.ID, &r.Name, &r.SortOrder, &r.CreatedAt); err != nil {
				return err
			}
			snap.Positions = append(snap.Positions, r)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("failed to export positions: %w", err)
	}

	if err := collect(db, `SELECT id, first_name, last_name, preferred_name, dob, positions_json, team_id,
			jersey_number, contact_number,
			guardian_name, guardian_relationship, guardian_phone, guardian_email,
			emergency_contact_name, emergency_contact_relationship, emergency_contact_phone,
			dominant_foot, medical_notes, injury_status, medication_notes,
			strengths, development_focus, coach_summary, notes, profile_image_url, created_at
		FROM players`,
		func(s scanner) error {
			var r PlayerRow
			if err := s.Scan(&r.ID, &r.FirstName, &r.LastName, &r.PreferredName, &r.DOB, &r.PositionsJSON, &r.TeamID,
				&r.JerseyNumber, &r.ContactNumber,
				&r.GuardianName, &r.GuardianRelationship, &r.GuardianPhone, &r.GuardianEmail,
				&r.EmergencyContactName, &r.EmergencyContactRelationship, &r.EmergencyContactPhone,
				&r.DominantFoot, &r.MedicalNotes, &r.InjuryStatus, &r.MedicationNotes,
				&r.Strengths, &r.DevelopmentFocus, &r.CoachSummary, &r.Notes, &r.ProfileImageURL, &r.CreatedAt); err != nil {
				return err
			}
			snap.Players = append(snap.Players, r)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("failed to export players: %w", err)
	}

	if err := collect(db, "SELECT id, date, player_id, team_id, points, updated_by_user_id, created_at FROM attendance",
		func(s scanner) error {
			var r AttendanceRow
			if err := s.Scan(&r.ID, &r.Date, &r.PlayerID, &r.TeamID, &r.Points, &r.UpdatedByUserID, &r.CreatedAt); err != nil {
				return err
			}
			snap.Attendance = append(snap.Attendance, r)
			return nil
		}); err != nil {
		return nil, fmt.Errorf("failed to export attendance: %w", err)
	}

	data, err := msgpack.Marshal(&snap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	log.Info("Exported snapshot",
		"users", len(snap.Users), "teams", len(snap.Teams), "positions", len(snap.Positions),
		"players", len(snap.Players), "attendance", len(snap.Attendance), "bytes", len(data))
	return data, nil
}

// Import replaces all data with the snapshot's contents in one transaction.
func Import(db *sql.DB, data []byte) error {
	var snap Snapshot
	if err := msgpack.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("failed to unmarshal snapshot: %w", err)
	}
	if snap.Version != currentVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin import transaction: %w", err)
	}

	for _, table := range []string{"attendance", "players", "positions", "teams", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for _, r := range snap.Users {
		if _, err := tx.Exec(`
			INSERT INTO users (id, name, email, password_hash, contact_number, role, profile_image_url, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.Email, r.PasswordHash, r.ContactNumber, r.Role, r.ProfileImageURL, r.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore user %s: %w", r.ID, err)
		}
	}
	for _, r := range snap.Teams {
		if _, err := tx.Exec(`
			INSERT INTO teams (id, name, main_coach_id, coach_ids_json, volunteer_ids_json, notes, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.MainCoachID, r.CoachIDsJSON, r.VolunteerIDsJSON, r.Notes, r.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore team %s: %w", r.ID, err)
		}
	}
	for _, r := range snap.Positions {
		if _, err := tx.Exec(`
			INSERT INTO positions (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
			r.ID, r.Name, r.SortOrder, r.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore position %s: %w", r.ID, err)
		}
	}
	for _, r := range snap.Players {
		if _, err := tx.Exec(`
			INSERT INTO players (
				id, first_name, last_name, preferred_name, dob, positions_json, team_id,
				jersey_number, contact_number,
				guardian_name, guardian_relationship, guardian_phone, guardian_email,
				emergency_contact_name, emergency_contact_relationship, emergency_contact_phone,
				dominant_foot, medical_notes, injury_status, medication_notes,
				strengths, development_focus, coach_summary, notes, profile_image_url, created_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.FirstName, r.LastName, r.PreferredName, r.DOB, r.PositionsJSON, r.TeamID,
			r.JerseyNumber, r.ContactNumber,
			r.GuardianName, r.GuardianRelationship, r.GuardianPhone, r.GuardianEmail,
			r.EmergencyContactName, r.EmergencyContactRelationship, r.EmergencyContactPhone,
			r.DominantFoot, r.MedicalNotes, r.InjuryStatus, r.MedicationNotes,
			r.Strengths, r.DevelopmentFocus, r.CoachSummary, r.Notes, r.ProfileImageURL, r.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore player %s: %w", r.ID, err)
		}
	}
	for _, r := range snap.Attendance {
		if _, err := tx.Exec(`
			INSERT INTO attendance (id, date, player_id, team_id, points, updated_by_user_id, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Date, r.PlayerID, r.TeamID, r.Points, r.UpdatedByUserID, r.CreatedAt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to restore attendance %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit import: %w", err)
	}
	log.Info("Imported snapshot", "takenAt", snap.TakenAt,
		"users", len(snap.Users), "players", len(snap.Players), "attendance", len(snap.Attendance))
	return nil
}

type scanner interface{ Scan(...any) error }

func collect(db *sql.DB, query string, scan func(scanner) error) error {
	rows, err := db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
