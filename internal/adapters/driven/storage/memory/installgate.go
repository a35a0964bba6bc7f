package memory

import (
	"sync"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure InstallGate implements the interface.
var _ driven.InstallGate = (*InstallGate)(nil)

// InstallGate is an in-memory implementation of driven.InstallGate.
type InstallGate struct {
	mu        sync.Mutex
	enabled   bool
	installed bool

	// EnableCalls counts SetInstallEnabled invocations.
	EnableCalls int
}

// NewInstallGate creates a gate for a not-yet-installed integration.
func NewInstallGate() *InstallGate {
	return &InstallGate{}
}

// SetInstalled flips the installed flag, for test setup.
func (g *InstallGate) SetInstalled(v bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.installed = v
}

// SetInstallEnabled records the install-action state.
func (g *InstallGate) SetInstallEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
	g.EnableCalls++
}

// Installed reports whether the integration is already installed.
func (g *InstallGate) Installed() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.installed
}

// Enabled reports the last value passed to SetInstallEnabled.
func (g *InstallGate) Enabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.enabled
}
