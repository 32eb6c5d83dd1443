package roster

import (
	"database/sql"
	"errors"
	"sync"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// store handles all database operations for the roster.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Role is a staff user's role. It decides what a user may see and edit.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleCoach     Role = "coach"
	RoleVolunteer Role = "volunteer"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleCoach || r == RoleVolunteer
}

// CanEdit reports whether the role carries the edit capability.
// Volunteers are view-only.
func (r Role) CanEdit() bool {
	return r == RoleAdmin || r == RoleCoach
}

// UserInfo represents a staff user. The password hash never leaves the store.
type UserInfo struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	ContactNumber   *string `json:"contact_number"`
	Role            Role    `json:"role"`
	ProfileImageURL *string `json:"profile_image_url"`
	CreatedAt       int64   `json:"created_at"`
}

// InjuryStatus is a player availability flag, unrelated to attendance.
type InjuryStatus string

const (
	InjuryNone        InjuryStatus = "none"
	InjuryRehab       InjuryStatus = "rehab"
	InjuryRestricted  InjuryStatus = "restricted"
	InjuryUnavailable InjuryStatus = "unavailable"
)

func (s InjuryStatus) Valid() bool {
	switch s {
	case InjuryNone, InjuryRehab, InjuryRestricted, InjuryUnavailable:
		return true
	}
	return false
}

// Player represents a player profile.
type Player struct {
	ID                           string       `json:"id"`
	FirstName                    string       `json:"first_name"`
	LastName                     string       `json:"last_name"`
	PreferredName                *string      `json:"preferred_name"`
	DOB                          string       `json:"dob"`
	Positions                    []string     `json:"positions"`
	TeamID                       *string      `json:"team_id"`
	TeamName                     *string      `json:"team_name,omitempty"`
	JerseyNumber                 *int         `json:"jersey_number"`
	ContactNumber                *string      `json:"contact_number"`
	GuardianName                 *string      `json:"guardian_name"`
	GuardianRelationship         *string      `json:"guardian_relationship"`
	GuardianPhone                *string      `json:"guardian_phone"`
	GuardianEmail                *string      `json:"guardian_email"`
	EmergencyContactName         *string      `json:"emergency_contact_name"`
	EmergencyContactRelationship *string      `json:"emergency_contact_relationship"`
	EmergencyContactPhone        *string      `json:"emergency_contact_phone"`
	DominantFoot                 *string      `json:"dominant_foot"`
	MedicalNotes                 *string      `json:"medical_notes"`
	InjuryStatus                 InjuryStatus `json:"injury_status"`
	MedicationNotes              *string      `json:"medication_notes"`
	Strengths                    *string      `json:"strengths"`
	DevelopmentFocus             *string      `json:"development_focus"`
	CoachSummary                 *string      `json:"coach_summary"`
	Notes                        *string      `json:"notes"`
	ProfileImageURL              *string      `json:"profile_image_url"`
	CreatedAt                    int64        `json:"created_at"`
}

// Redact clears the medical and family contact fields. It is applied before
// encoding a player for view-only roles.
func (p *Player) Redact() {
	p.ContactNumber = nil
	p.GuardianName = nil
	p.GuardianRelationship = nil
	p.GuardianPhone = nil
	p.GuardianEmail = nil
	p.EmergencyContactName = nil
	p.EmergencyContactRelationship = nil
	p.EmergencyContactPhone = nil
	p.MedicalNotes = nil
	p.MedicationNotes = nil
}

// PlayerFilter narrows a player listing.
type PlayerFilter struct {
	TeamID *string
	Search string
}

// Team represents a team and its support team (coach and volunteer ids).
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	MainCoachID  *string  `json:"main_coach_id"`
	CoachIDs     []string `json:"coach_ids"`
	VolunteerIDs []string `json:"volunteer_ids"`
	Notes        *string  `json:"notes"`
	PlayerCount  int      `json:"player_count"`
	CreatedAt    int64    `json:"created_at"`
}

// Position represents a playing position, ordered by sort order in listings.
type Position struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
	CreatedAt int64  `json:"created_at"`
}
