package driven

import (
	"context"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

// WorkspaceLister enumerates the workspaces reachable with a configuration's
// active credential. The concrete implementation lives in the bitbucket
// connector package.
type WorkspaceLister interface {
	// ListWorkspaces fetches the reachable workspaces. Fetch failures are
	// collapsed to domain.ErrCredentialFetch with the cause only logged; a
	// missing credential surfaces as domain.ErrNoCredential.
	ListWorkspaces(ctx context.Context, cfg *domain.Config) ([]domain.Workspace, error)
}
