// Package home implements the landing page.
package home

import (
	_ "embed"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/markdown"
	"github.com/proconsult/onboard/internal/ui/styles"
)

//go:embed landing.md
var landing string

const maxContentWidth = 100

// Model is the landing page.
type Model struct {
	services mode.Services
	viewport viewport.Model
	width    int
	height   int
}

// New creates the landing page.
func New(services mode.Services) Model {
	return Model{services: services}
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetSize renders the copy for the new width.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.viewport = viewport.New(width, max(height-2, 1))
	m.viewport.SetContent(m.render(min(width, maxContentWidth)))
	return m
}

func (m Model) render(width int) string {
	style := "dark"
	if m.services.Config != nil {
		style = m.services.Config.UI.MarkdownStyle
	}
	r, err := markdown.New(max(width-2, 20), style)
	if err != nil {
		log.ErrorErr(log.CatUI, "Markdown renderer unavailable", err)
		return landing
	}
	out, err := r.Render(landing)
	if err != nil {
		log.ErrorErr(log.CatUI, "Rendering landing page failed", err)
		return landing
	}
	return strings.TrimRight(out, "\n")
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(k, keys.Home.GetStarted):
		// The company step redirects to email verification when needed.
		return m, mode.Navigate(registration.RouteCreateCompany)
	case key.Matches(k, keys.Home.Forgot):
		return m, mode.Navigate(registration.RouteForgotPassword)
	case key.Matches(k, keys.Home.Quit):
		return m, tea.Quit
	case key.Matches(k, keys.Home.ScrollDown):
		m.viewport.ScrollDown(1)
	case key.Matches(k, keys.Home.ScrollUp):
		m.viewport.ScrollUp(1)
	}
	return m, nil
}

// View implements mode.Controller.
func (m Model) View() string {
	help := styles.HelpStyle.Render(keys.Help(
		keys.Home.GetStarted, keys.Home.Forgot, keys.Home.ScrollDown, keys.Home.Quit))
	return m.viewport.View() + "\n\n" + help
}
