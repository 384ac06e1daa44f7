package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/olusolaa/rds-power-scheduler/internal/core/domain"
	"github.com/olusolaa/rds-power-scheduler/internal/core/ports"
)

// MockRegionalClient is a mock implementation of ports.RegionalClient.
type MockRegionalClient struct {
	mock.Mock
	RegionName string
}

func (m *MockRegionalClient) Region() string {
	return m.RegionName
}

func (m *MockRegionalClient) ListDBInstances(ctx context.Context, out chan<- domain.ResourceRef) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

func (m *MockRegionalClient) ListDBClusters(ctx context.Context, out chan<- domain.ResourceRef) error {
	args := m.Called(ctx, out)
	return args.Error(0)
}

func (m *MockRegionalClient) StartResource(ctx context.Context, ref domain.ResourceRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockRegionalClient) StopResource(ctx context.Context, ref domain.ResourceRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

// MockPlatformProvider is a mock implementation of ports.PlatformProvider.
type MockPlatformProvider struct {
	mock.Mock
}

func (m *MockPlatformProvider) Type() string {
	return "mock"
}

func (m *MockPlatformProvider) ResolveRegions(ctx context.Context, requested []string) ([]string, error) {
	args := m.Called(ctx, requested)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPlatformProvider) RegionalClient(ctx context.Context, region string) (ports.RegionalClient, error) {
	args := m.Called(ctx, region)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.RegionalClient), args.Error(1)
}

func (m *MockPlatformProvider) AccountID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

// MockReporter is a mock implementation of ports.Reporter.
type MockReporter struct {
	mock.Mock
}

func (m *MockReporter) Report(ctx context.Context, summary *domain.RunSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

// MockLogger is a mock implementation of ports.Logger.
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debugf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Infof(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Warnf(ctx context.Context, format string, args ...any) {
	m.Called(ctx, format, args)
}

func (m *MockLogger) Errorf(ctx context.Context, err error, format string, args ...any) {
	m.Called(ctx, err, format, args)
}

func (m *MockLogger) WithFields(fields map[string]any) ports.Logger {
	m.Called(fields)
	return m
}

// NewRelaxedLogger returns a MockLogger that accepts any logging call, for
// tests that do not assert on log output.
func NewRelaxedLogger() *MockLogger {
	logger := new(MockLogger)
	logger.On("Debugf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	logger.On("Infof", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	logger.On("Warnf", mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	logger.On("Errorf", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Maybe().Return()
	logger.On("WithFields", mock.Anything).Maybe().Return()
	return logger
}
