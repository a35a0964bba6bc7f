// Package tui provides the interactive terminal interface of the
// integration wizard, built on bubbletea.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui/messages"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui/styles"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/adapters/driving/tui/views/wizard"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/domain"
	"github.com/Durgaprasad-Budhwani/bitbucket/internal/core/ports/driving"
)

// App is the top-level bubbletea model. It owns the wizard view and the
// subscription to setup service events.
type App struct {
	wizard *wizard.View
	setup  driving.SetupService
}

// NewApp creates the application model.
func NewApp(setup driving.SetupService, authorizeURL string) *App {
	s := styles.NewStyles(styles.DefaultTheme())
	w := wizard.NewView(s, setup)
	w.AuthorizeURL = authorizeURL
	return &App{wizard: w, setup: setup}
}

// Init starts the wizard and the event subscription.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.wizard.Init(), a.listenEvents())
}

// listenEvents forwards setup service events into the bubbletea loop. Each
// received event re-arms the listener.
func (a *App) listenEvents() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-a.setup.Events()
		if !ok {
			return nil
		}
		return ev
	}
}

// Update routes messages to the wizard.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			// "q" quits only outside text entry.
			if a.wizard.Step() != wizard.StepBasicAuth {
				return a, tea.Quit
			}
		}

	case domain.SetupEvent:
		var cmd tea.Cmd
		if msg == domain.EventConfigArrived {
			a.wizard, cmd = a.wizard.Update(messages.ConfigReloaded{})
		}
		return a, tea.Batch(cmd, a.listenEvents())
	}

	var cmd tea.Cmd
	a.wizard, cmd = a.wizard.Update(msg)
	return a, cmd
}

// View renders the current screen.
func (a *App) View() string {
	return a.wizard.View()
}

// Run starts the program and blocks until the user quits.
func Run(setup driving.SetupService, authorizeURL string) error {
	p := tea.NewProgram(NewApp(setup, authorizeURL), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
