package mailer

import "sync"

// Mock is a mock implementation of the Mailer interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	SendInviteFunc func(toEmail, toName, loginURL string) error

	InviteCalls []struct {
		ToEmail  string
		ToName   string
		LoginURL string
	}
}

// NewMock creates a new mock mailer.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendInvite(toEmail, toName, loginURL string) error {
	m.mu.Lock()
	m.InviteCalls = append(m.InviteCalls, struct {
		ToEmail  string
		ToName   string
		LoginURL string
	}{toEmail, toName, loginURL})
	m.mu.Unlock()
	if m.SendInviteFunc != nil {
		return m.SendInviteFunc(toEmail, toName, loginURL)
	}
	return nil
}
