package bitbucket

import (
	"context"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
)

// Ensure Lister implements the interface.
var _ driven.WorkspaceLister = (*Lister)(nil)

// Lister adapts per-credential clients to the driven.WorkspaceLister port.
// A fresh Client is built per call because the active credential lives in
// the configuration, not in this value.
type Lister struct {
	httpc driven.HTTPClient
	opts  []Option
}

// NewLister creates a workspace lister on top of the transport contract.
func NewLister(httpc driven.HTTPClient, opts ...Option) *Lister {
	return &Lister{httpc: httpc, opts: opts}
}

// ListWorkspaces fetches the workspaces reachable with the configuration's
// active credential.
func (l *Lister) ListWorkspaces(ctx context.Context, cfg *domain.Config) ([]domain.Workspace, error) {
	creds, err := CredsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return NewClient(l.httpc, creds, l.opts...).FetchWorkspaces(ctx)
}
