// Package wizard provides the interactive setup flow for the TUI: mode
// selection, credential entry for either deployment flavour, and the final
// account listing.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/oauth"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui/messages"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui/styles"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driving"
)

// WizardStep tracks the current step in the wizard.
type WizardStep int

const (
	StepModeChoice WizardStep = iota
	StepBasicAuth             // Self-managed: username, app password, base URL
	StepOAuthWait             // Cloud: browser auth + waiting for the redirect
	StepDiscovery             // Credential stored, discovery running
	StepAccounts
)

// Key constants.
const (
	keyEnter = "enter"
	keyDown  = "down"
	keyUp    = "up"
)

const redirectWait = 5 * time.Minute

// View is the setup wizard view.
type View struct {
	styles *styles.Styles
	setup  driving.SetupService

	// AuthorizeURL is the page that starts the cloud authorisation flow.
	AuthorizeURL string

	step     WizardStep
	selected int // mode cursor

	// Basic auth inputs
	inputs     []textinput.Model
	focusIndex int

	callbackServer *oauth.CallbackServer
	redirectURI    string

	accounts []domain.Account
	err      error

	width  int
	height int
	ready  bool
}

// NewView creates the wizard view.
func NewView(s *styles.Styles, setup driving.SetupService) *View {
	username := textinput.New()
	username.Placeholder = "Username"
	username.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "App password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 256

	baseURL := textinput.New()
	baseURL.Placeholder = "https://bitbucket.corp.example.com"
	baseURL.CharLimit = 256

	return &View{
		styles: s,
		setup:  setup,
		step:   StepModeChoice,
		inputs: []textinput.Model{username, password, baseURL},
	}
}

// Init derives the starting step from the stored configuration, so a wizard
// reopened after a credential was written lands on the account list.
func (v *View) Init() tea.Cmd {
	return v.deriveStep()
}

type stepDerived struct {
	state domain.SetupState
}

func (v *View) deriveStep() tea.Cmd {
	return func() tea.Msg {
		state, err := v.setup.State(context.Background(), domain.RedirectContext{})
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return stepDerived{state: state}
	}
}

// Update handles messages for the wizard.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = msg.Width
		v.height = msg.Height
		v.ready = true
		return v, nil

	case stepDerived:
		switch msg.state {
		case domain.StateModeChoice:
			v.step = StepModeChoice
		case domain.StateSelfManagedAuth, domain.StateReAuthSelfManaged:
			v.step = StepBasicAuth
			return v, v.inputs[0].Focus()
		case domain.StateCloudAuth, domain.StateReAuthCloud:
			return v, v.startOAuthWait()
		case domain.StateAccountSelection:
			v.step = StepDiscovery
			return v, v.runDiscovery()
		}
		return v, nil

	case messages.ConfigReloaded:
		return v, v.deriveStep()

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil

	case messages.ModeChosen:
		if msg.Mode == domain.ModeSelfManaged {
			v.step = StepBasicAuth
			return v, v.inputs[0].Focus()
		}
		return v, v.startOAuthWait()

	case messages.CredentialVerified:
		v.err = nil
		v.step = StepDiscovery
		return v, v.runDiscovery()

	case messages.RedirectProcessed:
		v.stopCallbackServer()
		if msg.Err != nil {
			v.err = msg.Err
			v.step = StepModeChoice
			return v, nil
		}
		v.err = nil
		v.step = StepDiscovery
		return v, v.runDiscovery()

	case messages.DiscoveryFinished:
		if msg.Err != nil {
			// A concurrent or discarded run is not a failure; stay on
			// the current step and wait for the next trigger.
			if errors.Is(msg.Err, domain.ErrDiscoveryInFlight) || errors.Is(msg.Err, domain.ErrDiscoveryStale) {
				return v, nil
			}
			v.err = msg.Err
			return v, nil
		}
		v.err = nil
		v.accounts = msg.Accounts
		v.step = StepAccounts
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)
	}

	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	if msg.String() == "esc" {
		switch v.step {
		case StepBasicAuth, StepOAuthWait:
			v.stopCallbackServer()
			v.err = nil
			v.step = StepModeChoice
			return v, nil
		}
	}

	switch v.step {
	case StepModeChoice:
		return v.handleModeSelect(msg)
	case StepBasicAuth:
		return v.handleBasicAuthInput(msg)
	}
	return v, nil
}

func (v *View) handleModeSelect(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyUp, "k":
		if v.selected > 0 {
			v.selected--
		}
	case keyDown, "j":
		if v.selected < 1 {
			v.selected++
		}
	case keyEnter:
		mode := domain.ModeCloud
		if v.selected == 1 {
			mode = domain.ModeSelfManaged
		}
		return v, v.chooseMode(mode)
	}
	return v, nil
}

func (v *View) chooseMode(mode domain.IntegrationMode) tea.Cmd {
	return func() tea.Msg {
		if err := v.setup.ChooseMode(context.Background(), mode); err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.ModeChosen{Mode: mode}
	}
}

func (v *View) handleBasicAuthInput(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "tab", keyDown:
		v.focusIndex = (v.focusIndex + 1) % len(v.inputs)
		return v, v.refocus()
	case "shift+tab", keyUp:
		v.focusIndex = (v.focusIndex + len(v.inputs) - 1) % len(v.inputs)
		return v, v.refocus()
	case keyEnter:
		if v.focusIndex < len(v.inputs)-1 {
			v.focusIndex++
			return v, v.refocus()
		}
		return v, v.submitBasicAuth()
	}

	var cmd tea.Cmd
	v.inputs[v.focusIndex], cmd = v.inputs[v.focusIndex].Update(msg)
	return v, cmd
}

func (v *View) refocus() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(v.inputs))
	for i := range v.inputs {
		if i == v.focusIndex {
			cmds = append(cmds, v.inputs[i].Focus())
		} else {
			v.inputs[i].Blur()
		}
	}
	return tea.Batch(cmds...)
}

func (v *View) submitBasicAuth() tea.Cmd {
	username := strings.TrimSpace(v.inputs[0].Value())
	password := v.inputs[1].Value()
	baseURL := strings.TrimSpace(v.inputs[2].Value())

	return func() tea.Msg {
		workspaces, err := v.setup.SubmitBasicAuth(context.Background(), username, password, baseURL)
		if err != nil {
			return messages.ErrorOccurred{Err: err}
		}
		return messages.CredentialVerified{Workspaces: workspaces}
	}
}

// startOAuthWait starts the redirect receiver and opens the browser.
func (v *View) startOAuthWait() tea.Cmd {
	v.callbackServer = oauth.NewCallbackServer(0)
	if err := v.callbackServer.Start(); err != nil {
		v.callbackServer = nil
		v.err = fmt.Errorf("failed to start callback server: %w", err)
		v.step = StepModeChoice
		return nil
	}
	v.redirectURI = v.callbackServer.RedirectURI()
	v.step = StepOAuthWait

	if v.AuthorizeURL != "" {
		_ = oauth.OpenBrowser(v.AuthorizeURL) //nolint:errcheck // URL shown in UI
	}

	srv := v.callbackServer
	return func() tea.Msg {
		raw, err := srv.WaitForRedirect(redirectWait)
		if err != nil {
			return messages.RedirectProcessed{Err: err}
		}
		written, err := v.setup.HandleRedirect(context.Background(), raw)
		return messages.RedirectProcessed{Written: written, Err: err}
	}
}

func (v *View) stopCallbackServer() {
	if v.callbackServer != nil {
		_ = v.callbackServer.Stop() //nolint:errcheck // best-effort cleanup
		v.callbackServer = nil
	}
}

func (v *View) runDiscovery() tea.Cmd {
	return func() tea.Msg {
		accounts, err := v.setup.Discover(context.Background())
		return messages.DiscoveryFinished{Accounts: accounts, Err: err}
	}
}

// Accounts returns the discovered accounts once the wizard reaches the
// final step.
func (v *View) Accounts() []domain.Account {
	return v.accounts
}

// Step returns the current wizard step.
func (v *View) Step() WizardStep {
	return v.step
}

// View renders the wizard.
func (v *View) View() string {
	var b strings.Builder

	b.WriteString(v.styles.Title.Render("Bitbucket Integration Setup"))
	b.WriteString("\n\n")

	switch v.step {
	case StepModeChoice:
		b.WriteString(v.styles.Normal.Render("Where does your Bitbucket deployment live?"))
		b.WriteString("\n\n")
		options := []string{"Bitbucket Cloud (bitbucket.org)", "Self-managed deployment"}
		for i, opt := range options {
			cursor := "  "
			line := v.styles.Normal.Render(opt)
			if i == v.selected {
				cursor = "> "
				line = v.styles.Selected.Render(opt)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + v.styles.Help.Render("↑/↓ select · enter confirm · q quit"))

	case StepBasicAuth:
		b.WriteString(v.styles.Normal.Render("Enter the credentials for your deployment."))
		b.WriteString("\n\n")
		labels := []string{"Username", "App password", "Base URL"}
		for i, input := range v.inputs {
			b.WriteString(v.styles.Muted.Render(labels[i]) + "\n")
			b.WriteString(input.View() + "\n")
		}
		b.WriteString("\n" + v.styles.Help.Render("tab next field · enter submit · esc back"))

	case StepOAuthWait:
		b.WriteString(v.styles.Normal.Render("Waiting for browser authorisation..."))
		b.WriteString("\n\n")
		if v.AuthorizeURL != "" {
			b.WriteString(v.styles.Muted.Render("Authorise at: "+v.AuthorizeURL) + "\n")
		}
		b.WriteString(v.styles.Muted.Render("Redirect endpoint: "+v.redirectURI) + "\n")
		b.WriteString("\n" + v.styles.Help.Render("esc cancel"))

	case StepDiscovery:
		b.WriteString(v.styles.Normal.Render("Credential stored. Discovering accounts..."))

	case StepAccounts:
		if len(v.accounts) == 0 {
			b.WriteString(v.styles.Warning.Render("No accounts discovered."))
		} else {
			b.WriteString(v.styles.Success.Render(fmt.Sprintf("%d account(s) discovered:", len(v.accounts))))
			b.WriteString("\n\n")
			for _, a := range v.accounts {
				name := a.Name
				if name == "" {
					name = a.ID
				}
				b.WriteString(fmt.Sprintf("  %s  %s  %d repos\n",
					v.styles.Normal.Render(name),
					v.styles.Muted.Render(a.Type),
					a.TotalCount))
			}
		}
		b.WriteString("\n" + v.styles.Help.Render("q quit"))
	}

	if v.err != nil {
		b.WriteString("\n\n" + v.styles.Error.Render(v.err.Error()))
	}

	return b.String()
}
