package interactions

import (
	"github.com/stretchr/testify/mock"
)

// MockErrorTracker implements the ErrorTracker interface for testing
type MockErrorTracker struct {
	mock.Mock
}

// ReportError mocks reporting one handler failure
func (m *MockErrorTracker) ReportError(err error, context string, fields map[string]string) {
	m.Called(err, context, fields)
}
