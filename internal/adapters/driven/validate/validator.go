// Package validate implements the validation contract against the live
// Bitbucket API: it probes the configured credential and turns the reachable
// workspaces into the raw account list the discovery service normalises.
package validate

import (
	"context"
	"fmt"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/connectors/bitbucket"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// Ensure Validator implements the interface.
var _ driven.Validator = (*Validator)(nil)

// Validator probes Bitbucket with a configuration's credential. One account
// is produced per reachable workspace; the workspace matching the
// authenticated user's UUID is typed "user", every other one "org".
type Validator struct {
	httpc driven.HTTPClient
	opts  []bitbucket.Option
}

// NewValidator creates a validator. Options (token refresher, rate limiter)
// are passed through to the API client built per call, so a credential
// change between calls always takes effect.
func NewValidator(httpc driven.HTTPClient, opts ...bitbucket.Option) *Validator {
	return &Validator{httpc: httpc, opts: opts}
}

// Validate fetches the workspaces, the authenticated user, and a repository
// count per workspace, and assembles the account list. A failing repository
// count does not sink the whole validation; the account is reported with a
// zero count.
func (v *Validator) Validate(ctx context.Context, cfg *domain.Config) ([]domain.ConfigAccount, error) {
	creds, err := bitbucket.CredsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	client := bitbucket.NewClient(v.httpc, creds, v.opts...)

	workspaces, err := client.FetchWorkspaceDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch workspaces: %w", err)
	}

	user, err := client.FetchMyUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch user: %w", err)
	}

	accounts := make([]domain.ConfigAccount, 0, len(workspaces))
	for _, ws := range workspaces {
		count, err := client.FetchRepoCount(ctx, ws.Slug)
		if err != nil {
			logger.Warn("repo count for %s: %v", ws.Slug, err)
			count = 0
		}

		kind := "org"
		if ws.UUID == user.UUID {
			kind = "user"
		}

		accounts = append(accounts, domain.ConfigAccount{
			ID:          ws.UUID,
			Public:      !ws.IsPrivate,
			Type:        kind,
			AvatarURL:   ws.AvatarURL,
			Name:        ws.Name,
			Description: ws.HTMLURL,
			TotalCount:  count,
		})
	}
	return accounts, nil
}
