package attendance

import (
	"sync"
	"time"
)

// MockStore is a mock implementation of the AttendanceStore interface for
// testing. It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	SaveDayFunc           func(date string, entries []Entry, actorUserID string) error
	RecordsForDateFunc    func(date string) ([]Record, error)
	SubmissionSummaryFunc func(start, end string) (map[string][]TeamSubmission, error)
	AnalyticsFunc         func(filter Filter) (*Report, error)
	PlayerSummaryFunc     func(playerID string, now time.Time) (*Summary, error)

	// Call records
	SaveDayCalls []struct {
		Date        string
		Entries     []Entry
		ActorUserID string
	}
	RecordsForDateCalls []string
	AnalyticsCalls      []Filter
	PlayerSummaryCalls  []string
}

// NewMock creates a new mock attendance store.
func NewMock() *MockStore {
	return &MockStore{}
}

func (m *MockStore) SaveDay(date string, entries []Entry, actorUserID string) error {
	m.mu.Lock()
	m.SaveDayCalls = append(m.SaveDayCalls, struct {
		Date        string
		Entries     []Entry
		ActorUserID string
	}{date, entries, actorUserID})
	m.mu.Unlock()
	if m.SaveDayFunc != nil {
		return m.SaveDayFunc(date, entries, actorUserID)
	}
	return nil
}

func (m *MockStore) RecordsForDate(date string) ([]Record, error) {
	m.mu.Lock()
	m.RecordsForDateCalls = append(m.RecordsForDateCalls, date)
	m.mu.Unlock()
	if m.RecordsForDateFunc != nil {
		return m.RecordsForDateFunc(date)
	}
	return nil, nil
}

func (m *MockStore) SubmissionSummary(start, end string) (map[string][]TeamSubmission, error) {
	if m.SubmissionSummaryFunc != nil {
		return m.SubmissionSummaryFunc(start, end)
	}
	return map[string][]TeamSubmission{}, nil
}

func (m *MockStore) Analytics(filter Filter) (*Report, error) {
	m.mu.Lock()
	m.AnalyticsCalls = append(m.AnalyticsCalls, filter)
	m.mu.Unlock()
	if m.AnalyticsFunc != nil {
		return m.AnalyticsFunc(filter)
	}
	return &Report{Players: []PlayerStats{}, Teams: []TeamStats{}}, nil
}

func (m *MockStore) PlayerSummary(playerID string, now time.Time) (*Summary, error) {
	m.mu.Lock()
	m.PlayerSummaryCalls = append(m.PlayerSummaryCalls, playerID)
	m.mu.Unlock()
	if m.PlayerSummaryFunc != nil {
		return m.PlayerSummaryFunc(playerID, now)
	}
	return &Summary{}, nil
}
