package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/inventory-migrator/internal/domain"
)

type MockMigrationService struct {
	mock.Mock
}

func (m *MockMigrationService) Status(ctx context.Context) domain.MigrationStatus {
	return m.Called(ctx).Get(0).(domain.MigrationStatus)
}

func (m *MockMigrationService) Run(ctx context.Context, req domain.RunRequest) domain.RunResult {
	return m.Called(ctx, req).Get(0).(domain.RunResult)
}

func (m *MockMigrationService) Skip(ctx context.Context) domain.SkipResult {
	return m.Called(ctx).Get(0).(domain.SkipResult)
}

func (m *MockMigrationService) State() domain.MigrationState {
	return m.Called().Get(0).(domain.MigrationState)
}

type MockReminderTrigger struct {
	mock.Mock
}

func (m *MockReminderTrigger) Trigger(ctx context.Context) (domain.ReminderCheck, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.ReminderCheck), args.Error(1)
}
