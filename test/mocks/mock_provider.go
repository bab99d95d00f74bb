package mocks

import (
	"context"
	"sync"

	"github.com/mosiko1234/heimdal/connectivity/internal/classifier"
)

// MockProvider is a mock connectivity provider for testing
type MockProvider struct {
	mu              sync.Mutex
	modern          bool
	capabilities    *classifier.Capabilities
	legacy          *classifier.LegacyInfo
	wifi            *classifier.WifiInfo
	capabilitiesErr error
	legacyErr       error
	wifiErr         error
	capsCalls       int
	legacyCalls     int
	wifiCalls       int
}

// NewMockProvider creates a mock provider. modern controls SupportsCapabilities.
func NewMockProvider(modern bool) *MockProvider {
	return &MockProvider{modern: modern}
}

// Name identifies the provider
func (m *MockProvider) Name() string {
	return "mock"
}

// SupportsCapabilities returns the configured gate
func (m *MockProvider) SupportsCapabilities() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.modern
}

// ActiveCapabilities returns the configured capabilities
func (m *MockProvider) ActiveCapabilities(ctx context.Context) (*classifier.Capabilities, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.capsCalls++
	if m.capabilitiesErr != nil {
		return nil, m.capabilitiesErr
	}
	return m.capabilities, nil
}

// ActiveNetworkInfo returns the configured legacy record
func (m *MockProvider) ActiveNetworkInfo(ctx context.Context) (*classifier.LegacyInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.legacyCalls++
	if m.legacyErr != nil {
		return nil, m.legacyErr
	}
	return m.legacy, nil
}

// WifiInfo returns the configured adapter record
func (m *MockProvider) WifiInfo(ctx context.Context) (*classifier.WifiInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.wifiCalls++
	if m.wifiErr != nil {
		return nil, m.wifiErr
	}
	return m.wifi, nil
}

// SetCapabilities sets the capability query result
func (m *MockProvider) SetCapabilities(caps *classifier.Capabilities) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilities = caps
}

// SetLegacy sets the legacy query result
func (m *MockProvider) SetLegacy(info *classifier.LegacyInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.legacy = info
}

// SetWifi sets the adapter query result
func (m *MockProvider) SetWifi(info *classifier.WifiInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wifi = info
}

// SetErrors configures errors for the three queries
func (m *MockProvider) SetErrors(capabilities, legacy, wifi error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.capabilitiesErr = capabilities
	m.legacyErr = legacy
	m.wifiErr = wifi
}

// CapabilitiesCalls returns how often the capability query ran
func (m *MockProvider) CapabilitiesCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capsCalls
}

// LegacyCalls returns how often the legacy query ran
func (m *MockProvider) LegacyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.legacyCalls
}

// WifiCalls returns how often the adapter query ran
func (m *MockProvider) WifiCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wifiCalls
}
