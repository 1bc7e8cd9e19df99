package publisher

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/DorianABDS/spec-to-issues/internal/models"
)

type MockTracker struct {
	mock.Mock
}

func (m *MockTracker) CheckRepository(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTracker) CreateLabel(ctx context.Context, name, color, description string) error {
	return m.Called(ctx, name, color, description).Error(0)
}

func (m *MockTracker) FindMilestone(ctx context.Context, title string) (int, bool, error) {
	args := m.Called(ctx, title)
	return args.Int(0), args.Bool(1), args.Error(2)
}

func (m *MockTracker) CreateMilestone(ctx context.Context, title string) (int, error) {
	args := m.Called(ctx, title)
	return args.Int(0), args.Error(1)
}

func (m *MockTracker) CreateIssue(ctx context.Context, draft models.IssueDraft) (*models.PublishedIssue, error) {
	args := m.Called(ctx, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublishedIssue), args.Error(1)
}

// countingPacer records how often it was asked to wait.
type countingPacer struct {
	mu    sync.Mutex
	waits int
}

func (p *countingPacer) Wait(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return nil
}

func (p *countingPacer) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.waits
}
