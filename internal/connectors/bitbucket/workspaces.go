package bitbucket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// WorkspaceDetail is a workspace plus the link fields the validation step
// needs but the transient domain shape does not carry.
type WorkspaceDetail struct {
	domain.Workspace
	AvatarURL string
	HTMLURL   string
}

// FetchWorkspaces lists the workspaces reachable with the client's
// credential. Any failure - non-200, transport error, decode error -
// collapses into domain.ErrCredentialFetch: the fixed message takes
// priority over diagnostic detail so credentials cannot leak through error
// text. The original cause goes to the debug log only.
func (c *Client) FetchWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	details, err := c.FetchWorkspaceDetails(ctx)
	if err != nil {
		logger.Debug("workspace fetch failed: %v", err)
		return nil, domain.ErrCredentialFetch
	}
	workspaces := make([]domain.Workspace, 0, len(details))
	for _, d := range details {
		workspaces = append(workspaces, d.Workspace)
	}
	return workspaces, nil
}

// FetchWorkspaceDetails lists workspaces with their avatar links, following
// pagination. Unlike FetchWorkspaces the error is not collapsed; callers on
// the validation path surface it wrapped.
func (c *Client) FetchWorkspaceDetails(ctx context.Context) ([]WorkspaceDetail, error) {
	logger.Debug("fetching workspaces")
	params := url.Values{}
	params.Set("pagelen", DefaultPageLength)
	params.Set("role", "member")

	var details []WorkspaceDetail
	err := c.paginate(ctx, "workspaces", params, func(values json.RawMessage) error {
		var res []workspaceResponse
		if err := json.Unmarshal(values, &res); err != nil {
			return fmt.Errorf("decode workspaces: %w", err)
		}
		for _, w := range res {
			details = append(details, WorkspaceDetail{
				Workspace: domain.Workspace{
					UUID:      w.UUID,
					Name:      w.Name,
					Slug:      w.Slug,
					IsPrivate: w.IsPrivate,
					Type:      w.Type,
				},
				AvatarURL: w.Links.Avatar.Href,
				HTMLURL:   w.Links.HTML.Href,
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error fetching workspaces: %w", err)
	}
	logger.Debug("finished fetching workspaces, count=%d", len(details))
	return details, nil
}

// FetchMyUser returns the authenticated user.
func (c *Client) FetchMyUser(ctx context.Context) (*User, error) {
	var user User
	if _, err := c.get(ctx, "user", url.Values{}, &user); err != nil {
		return nil, fmt.Errorf("error fetching current user: %w", err)
	}
	return &user, nil
}

// FetchRepoCount returns the number of repositories in a workspace without
// walking them: the pagination envelope's size field with pagelen=1.
func (c *Client) FetchRepoCount(ctx context.Context, workspaceSlug string) (int, error) {
	params := url.Values{}
	params.Set("pagelen", "1")
	var res paginationResponse
	if _, err := c.get(ctx, "repositories/"+workspaceSlug, params, &res); err != nil {
		return 0, fmt.Errorf("error getting count of repos for workspace (%s): %w", workspaceSlug, err)
	}
	return int(res.Size), nil
}
