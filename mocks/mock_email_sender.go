package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"hejazi/internal/port"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendViolationNotice(ctx context.Context, notice port.ViolationNotice) error {
	args := m.Called(ctx, notice)
	return args.Error(0)
}
