// Package cli implements the command line surface of the Bitbucket
// integration wizard. Commands are thin: they parse input, call the setup
// service, and print results. All business rules live in the core.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driven"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driving"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Wiring installed by main before Execute runs.
var (
	setupService driving.SetupService
	stateStore   driven.StateStore
	instanceID   string
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "bitbucket-integration",
	Short: "Configure the Bitbucket source control integration",
	Long: `bitbucket-integration connects a Bitbucket deployment to the agent.

It walks through mode selection (cloud or self-managed), credential entry,
and account discovery, and writes the resulting configuration for the agent
to pick up. Run without arguments to launch the interactive wizard.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	RunE: runSetup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug output")
}

// SetServices installs the wired services. Called once from main.
func SetServices(setup driving.SetupService, state driven.StateStore, instance string) {
	setupService = setup
	stateStore = state
	instanceID = instance
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
