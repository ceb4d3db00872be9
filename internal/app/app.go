// Package app contains the root application model.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/pubsub"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/banner"
	"github.com/proconsult/onboard/internal/ui/header"
	"github.com/proconsult/onboard/internal/ui/logview"
	"github.com/proconsult/onboard/internal/ui/overlay"
	"github.com/proconsult/onboard/internal/ui/setupoverlay"
)

// headerHeight is the rendered height of the header bar.
const headerHeight = 2

// Model is the root application state.
type Model struct {
	services mode.Services

	// Screen management
	route  registration.Route
	screen mode.Controller

	width  int
	height int

	banner banner.Model

	// Setup overlay, driven by the registration controller's broker.
	setup         setupoverlay.Model
	overlayState  registration.OverlayState
	overlayCancel context.CancelFunc
	overlayListen *pubsub.ContinuousListener[registration.OverlayState]

	debugMode bool
	logs      logview.Model
	logCancel context.CancelFunc
	logListen *log.LogListener

	// crash holds the recovered panic value while the fallback is shown.
	crash any
}

// New creates the root model at route. debugMode enables the log footer
// and the ctrl+x log overlay.
func New(services mode.Services, route registration.Route, debugMode bool) Model {
	m := Model{
		services:  services,
		banner:    banner.New(),
		setup:     setupoverlay.New(),
		logs:      logview.New(),
		debugMode: debugMode,
	}

	if services.Flow != nil {
		ctx, cancel := context.WithCancel(services.Context())
		m.overlayCancel = cancel
		m.overlayListen = pubsub.NewContinuousListener(ctx, services.Flow.Overlay().Broker())
	}
	if debugMode {
		ctx, cancel := context.WithCancel(services.Context())
		m.logCancel = cancel
		m.logListen = log.NewListener(ctx)
	}

	m, _ = m.open(route)
	return m
}

// Route returns the route of the screen on display.
func (m Model) Route() registration.Route {
	return m.route
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.screen.Init(), m.overlayListen.Listen()}
	if m.logListen != nil {
		cmds = append(cmds, m.logListen.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model. A panic in a screen replaces it with the
// fallback screen.
func (m Model) Update(msg tea.Msg) (result tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatUI, "Screen panicked", "route", string(m.route), "panic", fmt.Sprint(r))
			m.crash = r
			result, cmd = m, nil
		}
	}()
	return m.update(msg)
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.banner = m.banner.SetWidth(min(msg.Width-4, 80))
		m.logs = m.logs.SetSize(msg.Width, msg.Height)
		m.screen = m.screen.SetSize(msg.Width, m.bodyHeight())
		return m, nil

	case log.LogEvent:
		m.logs = m.logs.Append(msg.Payload)
		return m, m.logListen.Listen()

	case pubsub.Event[registration.OverlayState]:
		return m.handleOverlay(msg.Payload)

	case mode.NavigateMsg:
		return m.open(msg.To)

	case mode.ShowBannerMsg:
		var cmd tea.Cmd
		m.banner, cmd = m.banner.Show(msg.Kind, msg.Message)
		return m, cmd

	case banner.DismissMsg:
		m.banner, _ = m.banner.Update(msg)
		return m, nil

	case logview.CloseMsg:
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Global.Quit) {
			return m, tea.Quit
		}
		if m.debugMode && key.Matches(msg, keys.Global.Logs) && !m.logs.Visible() {
			m.logs = m.logs.Toggle()
			return m, nil
		}
		if m.logs.Visible() {
			var cmd tea.Cmd
			m.logs, cmd = m.logs.Update(msg)
			return m, cmd
		}
		if m.crash != nil {
			return m.updateFallback(msg)
		}
		if m.overlayState.Visible() {
			return m.updateOverlay(msg)
		}
		if key.Matches(msg, keys.Global.Dismiss) && m.banner.Visible() {
			m.banner, _ = m.banner.Update(msg)
			return m, nil
		}
	}

	if m.crash != nil {
		return m, nil
	}

	// The setup overlay ignores everything but its own ticks.
	var setupCmd, screenCmd tea.Cmd
	m.setup, setupCmd = m.setup.Update(msg)
	m.screen, screenCmd = m.screen.Update(msg)
	return m, tea.Batch(setupCmd, screenCmd)
}

func (m Model) handleOverlay(state registration.OverlayState) (Model, tea.Cmd) {
	prev := m.overlayState
	m.overlayState = state
	listen := m.overlayListen.Listen()

	switch {
	case state.Loading && !prev.Loading:
		log.Debug(log.CatUI, "Setup overlay shown")
		var cmd tea.Cmd
		m.setup, cmd = m.setup.Start()
		return m, tea.Batch(cmd, listen)
	case !state.Loading:
		m.setup = m.setup.Stop()
	}
	return m, listen
}

// updateOverlay handles keys while the setup overlay is up. Only the
// success overlay takes input.
func (m Model) updateOverlay(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.overlayState.Success || !key.Matches(msg, keys.Form.Submit) {
		return m, nil
	}
	log.Info(log.CatFlow, "Continuing to login", "url", m.services.LoginURL)
	m.services.Flow.Reset()
	m.overlayState = registration.OverlayState{}
	m.setup = m.setup.Stop()
	return m.open(registration.RouteHome)
}

// bodyHeight is the height left for the screen under the header and
// above the log footer.
func (m Model) bodyHeight() int {
	h := m.height - headerHeight
	if m.debugMode {
		h--
	}
	return max(h, 0)
}

// View implements tea.Model.
func (m Model) View() (view string) {
	if m.crash != nil {
		return m.fallbackView()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Error(log.CatUI, "View panicked", "route", string(m.route), "panic", fmt.Sprint(r))
			view = m.fallbackView()
		}
	}()

	body := lipgloss.JoinVertical(lipgloss.Left, m.headerView(), m.screen.View())
	if h := m.contentHeight(); h > 0 {
		body = lipgloss.NewStyle().Height(h).MaxHeight(h).Render(body)
	}
	if m.debugMode {
		body += "\n" + m.logs.Footer(m.width)
	}

	if m.banner.Visible() {
		body = overlay.Place(overlay.Config{Width: m.width, Height: m.height, Anchor: overlay.Top, Margin: headerHeight}, m.banner.View(), body)
	}

	switch {
	case m.overlayState.Success:
		body = overlay.Place(overlay.Config{Width: m.width, Height: m.height}, setupoverlay.SuccessView(m.services.LoginURL), overlay.Dim(body))
	case m.overlayState.Loading:
		body = overlay.Place(overlay.Config{Width: m.width, Height: m.height}, m.setup.View(), overlay.Dim(body))
	}

	if m.debugMode && m.logs.Visible() {
		body = m.logs.Overlay(body)
	}
	return body
}

func (m Model) headerView() string {
	h := header.Model{}
	if m.services.Config != nil {
		h.AppCode = m.services.Config.AppCode
	}
	if t, ok := m.screen.(mode.Titled); ok {
		h.Title = t.Title()
		h.Step, h.Steps = t.Step()
	}
	return h.View(m.width)
}

// contentHeight is the screen height above the log footer.
func (m Model) contentHeight() int {
	if m.debugMode {
		return m.height - 1
	}
	return m.height
}

// Close stops the broker subscriptions.
func (m *Model) Close() error {
	if m.overlayCancel != nil {
		m.overlayCancel()
	}
	if m.logCancel != nil {
		m.logCancel()
	}
	return nil
}
