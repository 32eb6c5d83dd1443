package roster

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new RosterStore.
func New(db *sql.DB) RosterStore {
	return &store{
		db: db,
	}
}

// ----- users -----

func (s *store) CreateUser(user UserInfo, passwordHash string) (UserInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.CreatedAt = time.Now().Unix()

	_, err := s.db.Exec(`
		INSERT INTO users (id, name, email, password_hash, contact_number, role, profile_image_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, passwordHash, user.ContactNumber, user.Role, user.ProfileImageURL, user.CreatedAt,
	)
	if err != nil {
		log.Error("Failed to create user", "error", err, "email", user.Email)
		return UserInfo{}, fmt.Errorf("failed to create user: %w", err)
	}
	log.Info("Created user", "userID", user.ID, "role", user.Role)
	return user, nil
}

func (s *store) GetUser(userID string) (*UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, name, email, contact_number, role, profile_image_url, created_at
		FROM users WHERE id = ?`, userID)
	return scanUser(row)
}

// GetUserByEmail returns the user and their password hash for credential checks.
func (s *store) GetUserByEmail(email string) (*UserInfo, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var u UserInfo
	var hash string
	err := s.db.QueryRow(`
		SELECT id, name, email, password_hash, contact_number, role, profile_image_url, created_at
		FROM users WHERE email = ? COLLATE NOCASE`, email).
		Scan(&u.ID, &u.Name, &u.Email, &hash, &u.ContactNumber, &u.Role, &u.ProfileImageURL, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, "", ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to query user by email: %w", err)
	}
	return &u, hash, nil
}

func (s *store) ListUsers() ([]UserInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, name, email, contact_number, role, profile_image_url, created_at
		FROM users ORDER BY name`)
	if err != nil {
		log.Error("Failed to query users", "error", err)
		return nil, err
	}
	defer rows.Close()

	var users []UserInfo
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			log.Error("Failed to scan user row", "error", err)
			continue
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *store) UpdateUser(user UserInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`
		UPDATE users SET name = ?, contact_number = ?, role = ?, profile_image_url = ?
		WHERE id = ?`,
		user.Name, user.ContactNumber, user.Role, user.ProfileImageURL, user.ID,
	)
	if err != nil {
		log.Error("Failed to update user", "error", err, "userID", user.ID)
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res)
}

func (s *store) DeleteUser(userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM users WHERE id = ?", userID)
	if err != nil {
		log.Error("Failed to delete user", "error", err, "userID", userID)
		return err
	}
	return requireAffected(res)
}

func scanUser(scanner interface{ Scan(...any) error }) (*UserInfo, error) {
	var u UserInfo
	err := scanner.Scan(&u.ID, &u.Name, &u.Email, &u.ContactNumber, &u.Role, &u.ProfileImageURL, &u.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// ----- players -----

const playerColumns = `
	p.id, p.first_name, p.last_name, p.preferred_name, p.dob, p.positions_json, p.team_id,
	p.jersey_number, p.contact_number,
	p.guardian_name, p.guardian_relationship, p.guardian_phone, p.guardian_email,
	p.emergency_contact_name, p.emergency_contact_relationship, p.emergency_contact_phone,
	p.dominant_foot, p.medical_notes, p.injury_status, p.medication_notes,
	p.strengths, p.development_focus, p.coach_summary, p.notes, p.profile_image_url, p.created_at,
	t.name`

func (s *store) CreatePlayer(player Player) (Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if player.ID == "" {
		player.ID = uuid.NewString()
	}
	if player.InjuryStatus == "" {
		player.InjuryStatus = InjuryNone
	}
	player.CreatedAt = time.Now().Unix()

	positionsJSON, err := json.Marshal(player.Positions)
	if err != nil {
		return Player{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO players (
			id, first_name, last_name, preferred_name, dob, positions_json, team_id,
			jersey_number, contact_number,
			guardian_name, guardian_relationship, guardian_phone, guardian_email,
			emergency_contact_name, emergency_contact_relationship, emergency_contact_phone,
			dominant_foot, medical_notes, injury_status, medication_notes,
			strengths, development_focus, coach_summary, notes, profile_image_url, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player.ID, player.FirstName, player.LastName, player.PreferredName, player.DOB, string(positionsJSON), player.TeamID,
		player.JerseyNumber, player.ContactNumber,
		player.GuardianName, player.GuardianRelationship, player.GuardianPhone, player.GuardianEmail,
		player.EmergencyContactName, player.EmergencyContactRelationship, player.EmergencyContactPhone,
		player.DominantFoot, player.MedicalNotes, player.InjuryStatus, player.MedicationNotes,
		player.Strengths, player.DevelopmentFocus, player.CoachSummary, player.Notes, player.ProfileImageURL, player.CreatedAt,
	)
	if err != nil {
		log.Error("Failed to create player", "error", err)
		return Player{}, fmt.Errorf("failed to create player: %w", err)
	}
	log.Info("Created player", "playerID", player.ID, "name", player.FirstName+" "+player.LastName)
	return player, nil
}

func (s *store) GetPlayer(playerID string) (*Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT `+playerColumns+`
		FROM players p LEFT JOIN teams t ON p.team_id = t.id
		WHERE p.id = ?`, playerID)
	return scanPlayer(row)
}

func (s *store) ListPlayers(filter PlayerFilter) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT ` + playerColumns + `
		FROM players p LEFT JOIN teams t ON p.team_id = t.id`
	var args []any
	var where []string
	if filter.TeamID != nil {
		where = append(where, "p.team_id = ?")
		args = append(args, *filter.TeamID)
	}
	if filter.Search != "" {
		where = append(where, "(p.first_name LIKE ? COLLATE NOCASE OR p.last_name LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}
	for i, cond := range where {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY p.last_name, p.first_name"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Error("Failed to query players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		players = append(players, *p)
	}
	return players, rows.Err()
}

func (s *store) UpdatePlayer(player Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	positionsJSON, err := json.Marshal(player.Positions)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE players SET
			first_name = ?, last_name = ?, preferred_name = ?, dob = ?, positions_json = ?, team_id = ?,
			jersey_number = ?, contact_number = ?,
			guardian_name = ?, guardian_relationship = ?, guardian_phone = ?, guardian_email = ?,
			emergency_contact_name = ?, emergency_contact_relationship = ?, emergency_contact_phone = ?,
			dominant_foot = ?, medical_notes = ?, injury_status = ?, medication_notes = ?,
			strengths = ?, development_focus = ?, coach_summary = ?, notes = ?, profile_image_url = ?
		WHERE id = ?`,
		player.FirstName, player.LastName, player.PreferredName, player.DOB, string(positionsJSON), player.TeamID,
		player.JerseyNumber, player.ContactNumber,
		player.GuardianName, player.GuardianRelationship, player.GuardianPhone, player.GuardianEmail,
		player.EmergencyContactName, player.EmergencyContactRelationship, player.EmergencyContactPhone,
		player.DominantFoot, player.MedicalNotes, player.InjuryStatus, player.MedicationNotes,
		player.Strengths, player.DevelopmentFocus, player.CoachSummary, player.Notes, player.ProfileImageURL,
		player.ID,
	)
	if err != nil {
		log.Error("Failed to update player", "error", err, "playerID", player.ID)
		return fmt.Errorf("failed to update player: %w", err)
	}
	return requireAffected(res)
}

// DeletePlayer removes a player. Attendance records cascade at the schema level.
func (s *store) DeletePlayer(playerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM players WHERE id = ?", playerID)
	if err != nil {
		log.Error("Failed to delete player", "error", err, "playerID", playerID)
		return err
	}
	return requireAffected(res)
}

func scanPlayer(scanner interface{ Scan(...any) error }) (*Player, error) {
	var p Player
	var positionsJSON string
	var teamName sql.NullString
	err := scanner.Scan(
		&p.ID, &p.FirstName, &p.LastName, &p.PreferredName, &p.DOB, &positionsJSON, &p.TeamID,
		&p.JerseyNumber, &p.ContactNumber,
		&p.GuardianName, &p.GuardianRelationship, &p.GuardianPhone, &p.GuardianEmail,
		&p.EmergencyContactName, &p.EmergencyContactRelationship, &p.EmergencyContactPhone,
		&p.DominantFoot, &p.MedicalNotes, &p.InjuryStatus, &p.MedicationNotes,
		&p.Strengths, &p.DevelopmentFocus, &p.CoachSummary, &p.Notes, &p.ProfileImageURL, &p.CreatedAt,
		&teamName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if teamName.Valid {
		p.TeamName = &teamName.String
	}
	p.Positions = []string{}
	if positionsJSON != "" {
		if err := json.Unmarshal([]byte(positionsJSON), &p.Positions); err != nil {
			log.Error("Failed to unmarshal positions_json", "error", err, "playerID", p.ID)
		}
	}
	return &p, nil
}

// ----- teams -----

func (s *store) CreateTeam(team Team) (Team, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if team.ID == "" {
		team.ID = uuid.NewString()
	}
	team.CreatedAt = time.Now().Unix()

	coachIDs, volunteerIDs, err := marshalSupportTeam(team)
	if err != nil {
		return Team{}, err
	}

	_, err = s.db.Exec(`
		INSERT INTO teams (id, name, main_coach_id, coach_ids_json, volunteer_ids_json, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		team.ID, team.Name, team.MainCoachID, coachIDs, volunteerIDs, team.Notes, team.CreatedAt,
	)
	if err != nil {
		log.Error("Failed to create team", "error", err, "name", team.Name)
		return Team{}, fmt.Errorf("failed to create team: %w", err)
	}
	log.Info("Created team", "teamID", team.ID, "name", team.Name)
	return team, nil
}

func (s *store) GetTeam(teamID string) (*Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT t.id, t.name, t.main_coach_id, t.coach_ids_json, t.volunteer_ids_json, t.notes, t.created_at,
			(SELECT COUNT(*) FROM players p WHERE p.team_id = t.id)
		FROM teams t WHERE t.id = ?`, teamID)
	return scanTeam(row)
}

func (s *store) ListTeams() ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT t.id, t.name, t.main_coach_id, t.coach_ids_json, t.volunteer_ids_json, t.notes, t.created_at,
			(SELECT COUNT(*) FROM players p WHERE p.team_id = t.id)
		FROM teams t ORDER BY t.name`)
	if err != nil {
		log.Error("Failed to query teams", "error", err)
		return nil, err
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		tm, err := scanTeam(rows)
		if err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, *tm)
	}
	return teams, rows.Err()
}

func (s *store) UpdateTeam(team Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	coachIDs, volunteerIDs, err := marshalSupportTeam(team)
	if err != nil {
		return err
	}

	res, err := s.db.Exec(`
		UPDATE teams SET name = ?, main_coach_id = ?, coach_ids_json = ?, volunteer_ids_json = ?, notes = ?
		WHERE id = ?`,
		team.Name, team.MainCoachID, coachIDs, volunteerIDs, team.Notes, team.ID,
	)
	if err != nil {
		log.Error("Failed to update team", "error", err, "teamID", team.ID)
		return fmt.Errorf("failed to update team: %w", err)
	}
	return requireAffected(res)
}

// DeleteTeam removes a team. Players keep playing without a team (team_id set
// NULL at the schema level); attendance rows keep the team id they were
// written with.
func (s *store) DeleteTeam(teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM teams WHERE id = ?", teamID)
	if err != nil {
		log.Error("Failed to delete team", "error", err, "teamID", teamID)
		return err
	}
	return requireAffected(res)
}

func marshalSupportTeam(team Team) (string, string, error) {
	if team.CoachIDs == nil {
		team.CoachIDs = []string{}
	}
	if team.VolunteerIDs == nil {
		team.VolunteerIDs = []string{}
	}
	coachIDs, err := json.Marshal(team.CoachIDs)
	if err != nil {
		return "", "", err
	}
	volunteerIDs, err := json.Marshal(team.VolunteerIDs)
	if err != nil {
		return "", "", err
	}
	return string(coachIDs), string(volunteerIDs), nil
}

func scanTeam(scanner interface{ Scan(...any) error }) (*Team, error) {
	var tm Team
	var coachIDs, volunteerIDs string
	err := scanner.Scan(&tm.ID, &tm.Name, &tm.MainCoachID, &coachIDs, &volunteerIDs, &tm.Notes, &tm.CreatedAt, &tm.PlayerCount)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	tm.CoachIDs = []string{}
	tm.VolunteerIDs = []string{}
	if err := json.Unmarshal([]byte(coachIDs), &tm.CoachIDs); err != nil {
		log.Error("Failed to unmarshal coach_ids_json", "error", err, "teamID", tm.ID)
	}
	if err := json.Unmarshal([]byte(volunteerIDs), &tm.VolunteerIDs); err != nil {
		log.Error("Failed to unmarshal volunteer_ids_json", "error", err, "teamID", tm.ID)
	}
	return &tm, nil
}

// ----- positions -----

func (s *store) CreatePosition(position Position) (Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position.ID == "" {
		position.ID = uuid.NewString()
	}
	position.CreatedAt = time.Now().Unix()

	_, err := s.db.Exec(`
		INSERT INTO positions (id, name, sort_order, created_at) VALUES (?, ?, ?, ?)`,
		position.ID, position.Name, position.SortOrder, position.CreatedAt,
	)
	if err != nil {
		log.Error("Failed to create position", "error", err, "name", position.Name)
		return Position{}, fmt.Errorf("failed to create position: %w", err)
	}
	return position, nil
}

func (s *store) ListPositions() ([]Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, sort_order, created_at FROM positions ORDER BY sort_order, name")
	if err != nil {
		log.Error("Failed to query positions", "error", err)
		return nil, err
	}
	defer rows.Close()

	var positions []Position
	for rows.Next() {
		var p Position
		if err := rows.Scan(&p.ID, &p.Name, &p.SortOrder, &p.CreatedAt); err != nil {
			log.Error("Failed to scan position row", "error", err)
			continue
		}
		positions = append(positions, p)
	}
	return positions, rows.Err()
}

func (s *store) UpdatePosition(position Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE positions SET name = ?, sort_order = ? WHERE id = ?",
		position.Name, position.SortOrder, position.ID)
	if err != nil {
		log.Error("Failed to update position", "error", err, "positionID", position.ID)
		return err
	}
	return requireAffected(res)
}

func (s *store) DeletePosition(positionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("DELETE FROM positions WHERE id = ?", positionID)
	if err != nil {
		log.Error("Failed to delete position", "error", err, "positionID", positionID)
		return err
	}
	return requireAffected(res)
}

// Clear wipes all roster and attendance data. Used by the admin reset endpoint
// and tests.
func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}
	for _, table := range []string{"attendance", "players", "teams", "positions", "users"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}
	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
