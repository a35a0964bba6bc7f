package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
)

var accountsCached bool

var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "Discover and list syncable accounts",
	Long: `Run account discovery for the stored credential and list the result.
Each reachable workspace becomes one account; the workspace belonging to the
authenticated user is typed "user", the rest "org".

With --cached the last discovered list is printed without touching the API.`,
	RunE: runAccounts,
}

func init() {
	accountsCmd.Flags().BoolVar(&accountsCached, "cached", false, "print the cached list, skip discovery")
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	ctx := context.Background()

	if accountsCached {
		if stateStore == nil {
			return errors.New("no local state store configured")
		}
		accounts, err := stateStore.Accounts(ctx, instanceID)
		if err != nil {
			return err
		}
		printAccounts(cmd, accounts)
		return nil
	}

	accounts, err := setupService.Discover(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDiscoveryInFlight) {
			cmd.Println("Discovery already running; try again shortly.")
			return nil
		}
		if errors.Is(err, domain.ErrDiscoveryStale) {
			cmd.Println("Configuration changed during discovery; run again.")
			return nil
		}
		return err
	}
	printAccounts(cmd, accounts)
	return nil
}

func printAccounts(cmd *cobra.Command, accounts []domain.Account) {
	if len(accounts) == 0 {
		cmd.Println("No accounts discovered.")
		return
	}
	cmd.Printf("%-28s %-6s %-8s %s\n", "NAME", "TYPE", "PUBLIC", "REPOS")
	for _, a := range accounts {
		name := a.Name
		if name == "" {
			name = a.ID
		}
		cmd.Printf("%-28s %-6s %-8t %d\n", name, a.Type, a.Public, a.TotalCount)
	}
	cmd.Println(fmt.Sprintf("\n%d account(s) discovered.", len(accounts)))
}
