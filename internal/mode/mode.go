// Package mode defines the screen controller interface, the services shared
// by all screens and the messages screens send to the root model.
package mode

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/banner"
)

// Controller defines the interface every screen implements.
type Controller interface {
	// Init returns the screen's initial commands.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen.
	Update(msg tea.Msg) (Controller, tea.Cmd)

	// View renders the screen body below the header.
	View() string

	// SetSize handles terminal resize events.
	SetSize(width, height int) Controller
}

// PasswordUpdater resets a user's password.
type PasswordUpdater interface {
	UpdatePassword(ctx context.Context, email, password string) error
}

// Services contains shared dependencies injected into screens.
type Services struct {
	Config    *config.Config
	Flow      *registration.Controller
	Passwords PasswordUpdater
	// LoginURL is where a finished account signs in.
	LoginURL string
	// Ctx bounds every request a screen starts.
	Ctx context.Context
}

// Context returns the services' context, or Background when unset.
func (s Services) Context() context.Context {
	if s.Ctx == nil {
		return context.Background()
	}
	return s.Ctx
}

// NavigateMsg asks the root model to open another screen.
type NavigateMsg struct {
	To registration.Route
}

// ShowBannerMsg asks the root model to show a banner.
type ShowBannerMsg struct {
	Kind    banner.Kind
	Message string
}

// Navigate returns a command that opens route.
func Navigate(to registration.Route) tea.Cmd {
	return func() tea.Msg { return NavigateMsg{To: to} }
}

// ShowError turns err into a banner, or into a navigation when err is a
// redirect.
func ShowError(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	if to, ok := registration.RedirectOf(err); ok {
		return Navigate(to)
	}
	msg := registration.Message(err)
	return func() tea.Msg { return ShowBannerMsg{Kind: banner.KindError, Message: msg} }
}

// ShowSuccess returns a command showing a success banner.
func ShowSuccess(message string) tea.Cmd {
	return func() tea.Msg { return ShowBannerMsg{Kind: banner.KindSuccess, Message: message} }
}

// Titled is implemented by screens that put a title and a wizard step in
// the header. Steps of 0 hides the step indicator.
type Titled interface {
	Title() string
	Step() (step, steps int)
}
