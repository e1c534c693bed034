package services

import (
	"context"
	"fmt"
	"sync"
)

// MockReportStore is an in-memory ReportStore for testing
type MockReportStore struct {
	reports map[string][]byte
	mu      sync.RWMutex

	// PutErr, when set, is returned by every PutReport call
	PutErr error
}

// NewMockReportStore creates an empty mock store
func NewMockReportStore() *MockReportStore {
	return &MockReportStore{
		reports: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global report store
func (m *MockReportStore) SetAsMockForTesting() {
	SetReportStore(m)
}

// PutReport stores body in memory, or returns the configured failure
func (m *MockReportStore) PutReport(ctx context.Context, key string, body []byte) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	m.mu.Lock()
	m.reports[key] = append([]byte(nil), body...)
	m.mu.Unlock()
	return nil
}

// GetReportURL returns a fake URL for an archived key
func (m *MockReportStore) GetReportURL(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", nil
	}

	m.mu.RLock()
	_, exists := m.reports[key]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("report not found in mock store: %s", key)
	}
	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", key), nil
}

// Reports returns a copy of everything stored so far
func (m *MockReportStore) Reports() map[string][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reports := make(map[string][]byte, len(m.reports))
	for k, v := range m.reports {
		reports[k] = v
	}
	return reports
}

// Clear removes all stored reports
func (m *MockReportStore) Clear() {
	m.mu.Lock()
	m.reports = make(map[string][]byte)
	m.mu.Unlock()
}
