package tokens

import (
	"sync"

	"github.com/spf13/viper"
)

// Manager holds the bearer token attached to upstream requests. The
// dashboard never issues tokens itself; it only stores and forwards one.
// An empty token is still attached as an empty bearer value, matching
// the upstream's lack of a pre-flight auth check.
type Manager struct {
	mu    sync.RWMutex
	token string
}

// NewManager creates a token manager seeded from configuration.
func NewManager() *Manager {
	return &Manager{
		token: viper.GetString("upstream.access_token"),
	}
}

// Token returns the current bearer token, possibly empty.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.token
}

// Set replaces the stored token.
func (m *Manager) Set(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.token = token
}

// Clear removes the stored token.
func (m *Manager) Clear() {
	m.Set("")
}
