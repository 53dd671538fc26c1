package mailer

import "context"

// MockMailer is a mock implementation of service.Mailer for testing
type MockMailer struct {
	SendFunc func(ctx context.Context, to, subject, body string) error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.SendFunc != nil {
		return m.SendFunc(ctx, to, subject, body)
	}

	// Default mock behavior: accept the message
	return nil
}
