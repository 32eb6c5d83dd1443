package roster

// RosterStore defines the interface for interacting with the academy's staff,
// players, teams and positions.
type RosterStore interface {
	CreateUser(user UserInfo, passwordHash string) (UserInfo, error)
	GetUser(userID string) (*UserInfo, error)
	GetUserByEmail(email string) (*UserInfo, string, error)
	ListUsers() ([]UserInfo, error)
	UpdateUser(user UserInfo) error
	DeleteUser(userID string) error

	CreatePlayer(player Player) (Player, error)
	GetPlayer(playerID string) (*Player, error)
	ListPlayers(filter PlayerFilter) ([]Player, error)
	UpdatePlayer(player Player) error
	DeletePlayer(playerID string) error

	CreateTeam(team Team) (Team, error)
	GetTeam(teamID string) (*Team, error)
	ListTeams() ([]Team, error)
	UpdateTeam(team Team) error
	DeleteTeam(teamID string) error

	CreatePosition(position Position) (Position, error)
	ListPositions() ([]Position, error)
	UpdatePosition(position Position) error
	DeletePosition(positionID string) error

	Clear()
}
