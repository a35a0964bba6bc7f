package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui"
)

var setupAuthorizeURL string

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Launch the interactive setup wizard",
	Long: `Launch the interactive terminal wizard.

The wizard walks through mode selection, credential entry (browser
authorisation for cloud, username and app password for self-managed), and
shows the discovered accounts when done.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().StringVar(&setupAuthorizeURL, "authorize-url", "", "page that starts the cloud authorisation flow")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	if err := tui.Run(setupService, setupAuthorizeURL); err != nil {
		return fmt.Errorf("wizard failed: %w", err)
	}
	return nil
}
