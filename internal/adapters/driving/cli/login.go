package cli

import (
	"bufio"
	"context"
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	loginUsername string
	loginPassword string
	loginURL      string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate against a self-managed deployment",
	Long: `Authenticate against a self-managed Bitbucket deployment with a
username and app password. The credential is verified by listing the
workspaces it can reach; nothing is stored until that succeeds.

Examples:
  bitbucket-integration login                       # Interactive prompts
  bitbucket-integration login -u alice --url https://bb.corp.example.com`,
	RunE: runLogin,
}

func init() {
	loginCmd.Flags().StringVarP(&loginUsername, "username", "u", "", "account username")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "app password (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginURL, "url", "", "base URL of the deployment")
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, _ []string) error {
	if setupService == nil {
		return errors.New("setup service not configured")
	}

	reader := bufio.NewReader(os.Stdin)

	username := loginUsername
	if username == "" {
		cmd.Print("Username: ")
		username = readLine(reader)
	}

	baseURL := loginURL
	if baseURL == "" {
		cmd.Print("Base URL: ")
		baseURL = readLine(reader)
	}

	password := loginPassword
	if password == "" {
		cmd.Print("App password: ")
		password = readPassword()
		cmd.Println()
	}

	workspaces, err := setupService.SubmitBasicAuth(context.Background(), username, password, baseURL)
	if err != nil {
		return err
	}

	cmd.Printf("Credential verified. %d workspace(s) reachable:\n", len(workspaces))
	for _, ws := range workspaces {
		cmd.Printf("  %s\n", ws.Slug)
	}
	cmd.Println("\nRun 'bitbucket-integration accounts' to discover syncable accounts.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readPassword() string {
	// Try to read password without echo
	if term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err == nil {
			return string(password)
		}
	}
	// Fallback to regular input
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
