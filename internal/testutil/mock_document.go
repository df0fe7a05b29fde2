// Package testutil provides test utilities and helpers for unitylink tests.
package testutil

import (
	"sync"
	"testing"

	"github.com/expo-unity/unitylink/internal/buildsettings"
	"github.com/expo-unity/unitylink/internal/framework"
)

// Registration records a single RegisterFramework call.
type Registration struct {
	Path       string
	Attributes framework.Attributes
}

// MockDocumentBuilder provides a fluent API for configuring a mock project document.
type MockDocumentBuilder struct {
	configs      []buildsettings.Configuration
	enumerateErr error
	registerErr  error
	t            *testing.T
}

// NewMockDocumentBuilder creates a new MockDocumentBuilder.
func NewMockDocumentBuilder(t *testing.T) *MockDocumentBuilder {
	t.Helper()
	return &MockDocumentBuilder{t: t}
}

// WithConfiguration adds a configuration backed by settings. The map is
// shared with the document, so callers can inspect it after a transform.
func (b *MockDocumentBuilder) WithConfiguration(name string, settings buildsettings.RawSettings) *MockDocumentBuilder {
	if settings == nil {
		settings = buildsettings.RawSettings{}
	}
	b.configs = append(b.configs, mockConfiguration{name: name, settings: settings})
	return b
}

// WithPlaceholder adds a configuration entry that has no settings mapping.
func (b *MockDocumentBuilder) WithPlaceholder(name string) *MockDocumentBuilder {
	b.configs = append(b.configs, mockConfiguration{name: name})
	return b
}

// WithEnumerateError makes Configurations fail.
func (b *MockDocumentBuilder) WithEnumerateError(err error) *MockDocumentBuilder {
	b.enumerateErr = err
	return b
}

// WithRegisterError makes RegisterFramework fail.
func (b *MockDocumentBuilder) WithRegisterError(err error) *MockDocumentBuilder {
	b.registerErr = err
	return b
}

// Build creates the MockDocument.
func (b *MockDocumentBuilder) Build() *MockDocument {
	return &MockDocument{
		configs:      b.configs,
		enumerateErr: b.enumerateErr,
		registerErr:  b.registerErr,
		registered:   make(map[string]bool),
	}
}

// MockDocument is an in-memory host document that records registrations.
type MockDocument struct {
	mu           sync.Mutex
	configs      []buildsettings.Configuration
	enumerateErr error
	registerErr  error
	calls        []Registration
	registered   map[string]bool
}

// Configurations implements transform.Document.
func (m *MockDocument) Configurations() ([]buildsettings.Configuration, error) {
	if m.enumerateErr != nil {
		return nil, m.enumerateErr
	}
	return m.configs, nil
}

// RegisterFramework implements framework.Host.
func (m *MockDocument) RegisterFramework(path string, attrs framework.Attributes) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, Registration{Path: path, Attributes: attrs})
	if m.registerErr != nil {
		return m.registerErr
	}
	m.registered[path] = true
	return nil
}

// HasFramework implements framework.Inspector.
func (m *MockDocument) HasFramework(path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registered[path]
}

// GetRegistrations returns all recorded RegisterFramework calls.
func (m *MockDocument) GetRegistrations() []Registration {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([]Registration, len(m.calls))
	copy(result, m.calls)
	return result
}

// AssertRegistrationCount verifies the number of RegisterFramework calls.
func (m *MockDocument) AssertRegistrationCount(t *testing.T, expected int) {
	t.Helper()

	if got := len(m.GetRegistrations()); got != expected {
		t.Errorf("expected RegisterFramework to be called %d times, got %d", expected, got)
	}
}

// mockConfiguration is a named configuration over RawSettings.
type mockConfiguration struct {
	name     string
	settings buildsettings.RawSettings
}

func (c mockConfiguration) Name() string { return c.name }

func (c mockConfiguration) Settings() (buildsettings.Settings, bool) {
	if c.settings == nil {
		return nil, false
	}
	return c.settings, true
}
