package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the integration setup currently stands",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	ctx := context.Background()

	state, err := setupService.State(ctx, domain.RedirectContext{})
	if err != nil {
		return err
	}

	cmd.Printf("State: %s\n", describeState(state))

	if stateStore != nil {
		ts, ok, err := stateStore.LastValidated(ctx, instanceID)
		if err != nil {
			return err
		}
		if ok {
			cmd.Printf("Last validated: %s\n", ts.Format("2006-01-02 15:04:05"))
		} else {
			cmd.Println("Last validated: never")
		}
	}
	return nil
}

func describeState(state domain.SetupState) string {
	switch state {
	case domain.StateModeChoice:
		return "waiting for mode selection (run 'mode cloud' or 'mode selfmanaged')"
	case domain.StateCloudAuth:
		return "cloud mode selected, waiting for authorisation (run 'authorize')"
	case domain.StateSelfManagedAuth:
		return "self-managed mode selected, waiting for credentials (run 'login')"
	case domain.StateAccountSelection:
		return "credential stored, accounts available (run 'accounts')"
	case domain.StateReAuthCloud, domain.StateReAuthSelfManaged:
		return "credential expired, re-authentication required"
	default:
		return state.String()
	}
}
