package roster

import "sync"

// MockStore is a mock implementation of the RosterStore interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	CreateUserFunc     func(user UserInfo, passwordHash string) (UserInfo, error)
	GetUserFunc        func(userID string) (*UserInfo, error)
	GetUserByEmailFunc func(email string) (*UserInfo, string, error)
	ListUsersFunc      func() ([]UserInfo, error)
	UpdateUserFunc     func(user UserInfo) error
	DeleteUserFunc     func(userID string) error

	CreatePlayerFunc func(player Player) (Player, error)
	GetPlayerFunc    func(playerID string) (*Player, error)
	ListPlayersFunc  func(filter PlayerFilter) ([]Player, error)
	UpdatePlayerFunc func(player Player) error
	DeletePlayerFunc func(playerID string) error

	CreateTeamFunc func(team Team) (Team, error)
	GetTeamFunc    func(teamID string) (*Team, error)
	ListTeamsFunc  func() ([]Team, error)
	UpdateTeamFunc func(team Team) error
	DeleteTeamFunc func(teamID string) error

	CreatePositionFunc func(position Position) (Position, error)
	ListPositionsFunc  func() ([]Position, error)
	UpdatePositionFunc func(position Position) error
	DeletePositionFunc func(positionID string) error

	// Call records
	CreateUserCalls   []UserInfo
	DeleteUserCalls   []string
	CreatePlayerCalls []Player
	ListPlayersCalls  []PlayerFilter
	ClearCalls        int
}

// NewMock creates a new mock roster store.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) CreateUser(user UserInfo, passwordHash string) (UserInfo, error) {
	m.mu.Lock()
	m.CreateUserCalls = append(m.CreateUserCalls, user)
	m.mu.Unlock()
	if m.CreateUserFunc != nil {
		return m.CreateUserFunc(user, passwordHash)
	}
	return user, nil
}

func (m *MockStore) GetUser(userID string) (*UserInfo, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(userID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) GetUserByEmail(email string) (*UserInfo, string, error) {
	if m.GetUserByEmailFunc != nil {
		return m.GetUserByEmailFunc(email)
	}
	return nil, "", ErrNotFound
}

func (m *MockStore) ListUsers() ([]UserInfo, error) {
	if m.ListUsersFunc != nil {
		return m.ListUsersFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateUser(user UserInfo) error {
	if m.UpdateUserFunc != nil {
		return m.UpdateUserFunc(user)
	}
	return nil
}

func (m *MockStore) DeleteUser(userID string) error {
	m.mu.Lock()
	m.DeleteUserCalls = append(m.DeleteUserCalls, userID)
	m.mu.Unlock()
	if m.DeleteUserFunc != nil {
		return m.DeleteUserFunc(userID)
	}
	return nil
}

func (m *MockStore) CreatePlayer(player Player) (Player, error) {
	m.mu.Lock()
	m.CreatePlayerCalls = append(m.CreatePlayerCalls, player)
	m.mu.Unlock()
	if m.CreatePlayerFunc != nil {
		return m.CreatePlayerFunc(player)
	}
	return player, nil
}

func (m *MockStore) GetPlayer(playerID string) (*Player, error) {
	if m.GetPlayerFunc != nil {
		return m.GetPlayerFunc(playerID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListPlayers(filter PlayerFilter) ([]Player, error) {
	m.mu.Lock()
	m.ListPlayersCalls = append(m.ListPlayersCalls, filter)
	m.mu.Unlock()
	if m.ListPlayersFunc != nil {
		return m.ListPlayersFunc(filter)
	}
	return nil, nil
}

func (m *MockStore) UpdatePlayer(player Player) error {
	if m.UpdatePlayerFunc != nil {
		return m.UpdatePlayerFunc(player)
	}
	return nil
}

func (m *MockStore) DeletePlayer(playerID string) error {
	if m.DeletePlayerFunc != nil {
		return m.DeletePlayerFunc(playerID)
	}
	return nil
}

func (m *MockStore) CreateTeam(team Team) (Team, error) {
	if m.CreateTeamFunc != nil {
		return m.CreateTeamFunc(team)
	}
	return team, nil
}

func (m *MockStore) GetTeam(teamID string) (*Team, error) {
	if m.GetTeamFunc != nil {
		return m.GetTeamFunc(teamID)
	}
	return nil, ErrNotFound
}

func (m *MockStore) ListTeams() ([]Team, error) {
	if m.ListTeamsFunc != nil {
		return m.ListTeamsFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdateTeam(team Team) error {
	if m.UpdateTeamFunc != nil {
		return m.UpdateTeamFunc(team)
	}
	return nil
}

func (m *MockStore) DeleteTeam(teamID string) error {
	if m.DeleteTeamFunc != nil {
		return m.DeleteTeamFunc(teamID)
	}
	return nil
}

func (m *MockStore) CreatePosition(position Position) (Position, error) {
	if m.CreatePositionFunc != nil {
		return m.CreatePositionFunc(position)
	}
	return position, nil
}

func (m *MockStore) ListPositions() ([]Position, error) {
	if m.ListPositionsFunc != nil {
		return m.ListPositionsFunc()
	}
	return nil, nil
}

func (m *MockStore) UpdatePosition(position Position) error {
	if m.UpdatePositionFunc != nil {
		return m.UpdatePositionFunc(position)
	}
	return nil
}

func (m *MockStore) DeletePosition(positionID string) error {
	if m.DeletePositionFunc != nil {
		return m.DeletePositionFunc(positionID)
	}
	return nil
}

func (m *MockStore) Clear() {
	m.mu.Lock()
	m.ClearCalls++
	m.mu.Unlock()
}
