package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

var modeCmd = &cobra.Command{
	Use:   "mode [cloud|selfmanaged]",
	Short: "Select how the Bitbucket deployment is hosted",
	Long: `Select between Bitbucket Cloud (bitbucket.org) and a self-managed
deployment. Switching modes discards any stored credential, since a
credential for one deployment is meaningless against the other.`,
	Args: cobra.ExactArgs(1),
	RunE: runMode,
}

func init() {
	rootCmd.AddCommand(modeCmd)
}

func runMode(cmd *cobra.Command, args []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}

	var mode domain.IntegrationMode
	switch args[0] {
	case "cloud":
		mode = domain.ModeCloud
	case "selfmanaged", "self-managed":
		mode = domain.ModeSelfManaged
	default:
		return fmt.Errorf("unknown mode %q (want cloud or selfmanaged)", args[0])
	}

	if err := setupService.ChooseMode(context.Background(), mode); err != nil {
		return err
	}
	cmd.Printf("Mode set to %s.\n", args[0])
	return nil
}
