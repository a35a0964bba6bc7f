// Command bitbucket-integration configures the Bitbucket source control
// integration: mode selection, credential entry, and account discovery.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driven/config/file"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driven/httpclient"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driven/oauth"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driven/storage/sqlite"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driven/validate"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/cli"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/connectors/bitbucket"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/services"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	dataDir := os.Getenv("BITBUCKET_INTEGRATION_HOME")

	host, err := file.NewConfigChannel(dataDir)
	if err != nil {
		return fmt.Errorf("config channel: %w", err)
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("state store: %w", err)
	}
	defer store.Close()

	httpc := httpclient.New()

	var opts []bitbucket.Option
	if clientID := os.Getenv("BITBUCKET_OAUTH_CLIENT_ID"); clientID != "" {
		refresher := oauth.NewRefresher(clientID, os.Getenv("BITBUCKET_OAUTH_CLIENT_SECRET"), "")
		opts = append(opts, bitbucket.WithTokenRefresher(refresher))
	}

	validator := validate.NewValidator(httpc, opts...)
	lister := bitbucket.NewLister(httpc, opts...)
	gate := &envInstallGate{}

	discovery := services.NewDiscoveryService(host, validator, gate, store)
	setup := services.NewSetupService(host, lister, discovery)

	// External edits of the config file re-trigger state derivation while a
	// wizard or long command is open.
	watchCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := host.Watch(watchCtx, setup.NotifyConfigArrived); err != nil && watchCtx.Err() == nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()

	cli.SetServices(setup, store, discovery.InstanceID())
	return cli.Execute()
}

// envInstallGate is the CLI's stand-in for a host install button. Installed
// state is owned by the host; here it arrives through the environment.
type envInstallGate struct {
	enabled bool
}

func (g *envInstallGate) SetInstallEnabled(enabled bool) {
	g.enabled = enabled
	if enabled {
		logger.Info("integration ready to install")
	}
}

func (g *envInstallGate) Installed() bool {
	return os.Getenv("BITBUCKET_INTEGRATION_INSTALLED") == "true"
}
