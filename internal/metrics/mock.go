package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	logins             int
	loginFailures      int
	attendanceSaves    int
	saveDurations      []float64
	analyticsQueries   int
	inviteEmailsSent   int
	inviteEmailsFailed int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		saveDurations: make([]float64, 0),
	}
}

func (m *Mock) IncLogins() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins++
}

func (m *Mock) IncLoginFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginFailures++
}

func (m *Mock) IncAttendanceSaves() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attendanceSaves++
}

func (m *Mock) ObserveSaveDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveDurations = append(m.saveDurations, duration)
}

func (m *Mock) IncAnalyticsQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.analyticsQueries++
}

func (m *Mock) IncInviteEmailsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inviteEmailsSent++
}

func (m *Mock) IncInviteEmailsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inviteEmailsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Logins returns the number of times IncLogins was called.
func (m *Mock) Logins() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.logins
}

// AttendanceSaves returns the number of times IncAttendanceSaves was called.
func (m *Mock) AttendanceSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attendanceSaves
}

// AnalyticsQueries returns the number of times IncAnalyticsQueries was called.
func (m *Mock) AnalyticsQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.analyticsQueries
}

// InviteEmailsSent returns the number of times IncInviteEmailsSent was called.
func (m *Mock) InviteEmailsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inviteEmailsSent
}

// InviteEmailsFailed returns the number of times IncInviteEmailsFailed was called.
func (m *Mock) InviteEmailsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.inviteEmailsFailed
}
