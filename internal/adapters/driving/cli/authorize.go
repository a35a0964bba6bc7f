package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/oauth"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/logger"
)

var (
	authorizeURL     string
	authorizeTimeout time.Duration
	authorizeNoOpen  bool
)

var authorizeCmd = &cobra.Command{
	Use:   "authorize",
	Short: "Authenticate against Bitbucket Cloud via the browser",
	Long: `Authenticate against Bitbucket Cloud. A local server receives the
redirect that completes the browser authorisation; the credential it carries
is stored and account discovery runs immediately after.

The --url flag names the page that starts the authorisation flow (the
integration page of your host platform).`,
	RunE: runAuthorize,
}

func init() {
	authorizeCmd.Flags().StringVar(&authorizeURL, "url", "", "authorisation page to open (required)")
	authorizeCmd.Flags().DurationVar(&authorizeTimeout, "timeout", 5*time.Minute, "how long to wait for the redirect")
	authorizeCmd.Flags().BoolVar(&authorizeNoOpen, "no-open", false, "print the URL instead of opening a browser")
	_ = authorizeCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(authorizeCmd)
}

func runAuthorize(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}
	ctx := context.Background()

	if err := setupService.ChooseMode(ctx, domain.ModeCloud); err != nil {
		return err
	}

	srv := oauth.NewCallbackServer(0)
	if err := srv.Start(); err != nil {
		return err
	}
	defer srv.Stop()

	cmd.Printf("Listening for the redirect on %s\n", srv.RedirectURI())
	if authorizeNoOpen {
		cmd.Printf("Open this page to authorise: %s\n", authorizeURL)
	} else if err := oauth.OpenBrowser(authorizeURL); err != nil {
		logger.Warn("open browser: %v", err)
		cmd.Printf("Open this page to authorise: %s\n", authorizeURL)
	}

	raw, err := srv.WaitForRedirect(authorizeTimeout)
	if err != nil {
		return err
	}

	written, err := setupService.HandleRedirect(ctx, raw)
	if err != nil {
		return err
	}
	if !written {
		cmd.Println("Redirect already processed; credential unchanged.")
		return nil
	}
	cmd.Println("Credential stored.")

	accounts, err := setupService.Discover(ctx)
	if err != nil {
		return err
	}
	printAccounts(cmd, accounts)
	return nil
}
