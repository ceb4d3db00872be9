// Package recovery implements the forgot-password screen: the account
// email, then a new password, then a confirmation.
package recovery

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/inputgroup"
	"github.com/proconsult/onboard/internal/ui/styles"
	"github.com/proconsult/onboard/internal/validate"
)

// Step is a stage of the recovery screen.
type Step int

const (
	StepEmail Step = iota
	StepPassword
	StepDone
)

const formWidth = 48

const (
	fieldPassword = iota
	fieldConfirm
)

type updatedMsg struct{ err error }

// Model is the forgot-password screen.
type Model struct {
	services      mode.Services
	step          Step
	email         inputgroup.Model
	passwords     inputgroup.Form
	spin          spinner.Model
	loading       bool
	width, height int
}

// New creates the recovery screen at the email stage.
func New(services mode.Services) Model {
	email := inputgroup.New(inputgroup.Config{
		Label:       "Email Address",
		Placeholder: "you@company.com",
		Required:    true,
		CharLimit:   254,
		Width:       formWidth - 4,
		Validate: func(s string) []string {
			if r := validate.Email(s); !r.Valid {
				return []string{r.Error}
			}
			return nil
		},
	})
	email, _ = email.Focus()

	w := formWidth - 4
	passwords, _ := inputgroup.NewForm(
		inputgroup.Config{
			Label: "New password", Placeholder: "••••••••", Required: true, Password: true, CharLimit: 128, Width: w,
			Validate: func(s string) []string {
				if s == "" {
					return nil
				}
				return validate.Password(s).Errors
			},
		},
		inputgroup.Config{Label: "Confirm password", Placeholder: "••••••••", Required: true, Password: true, CharLimit: 128, Width: w},
	)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.SpinnerColor)

	return Model{services: services, email: email, passwords: passwords, spin: s}
}

// Step returns the current stage.
func (m Model) Step() Step { return m.step }

// Title implements mode.Titled.
func (m Model) Title() string { return "Reset Password" }

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd { return textinput.Blink }

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width, m.height = width, height
	return m
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case updatedMsg:
		m.loading = false
		m.passwords = m.passwords.SetDisabled(false)
		if msg.err != nil {
			log.ErrorErr(log.CatRecovery, "Password update failed", msg.err, "email", m.email.Value())
			return m, mode.ShowError(msg.err)
		}
		log.Info(log.CatRecovery, "Password updated", "email", m.email.Value())
		m.step = StepDone
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch m.step {
		case StepEmail:
			return m.updateEmail(msg)
		case StepPassword:
			return m.updatePassword(msg)
		case StepDone:
			if key.Matches(msg, keys.Form.Submit) {
				return m, mode.Navigate(registration.RouteHome)
			}
		}
	}
	return m, nil
}

func (m Model) updateEmail(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Back):
		return m, mode.Navigate(registration.RouteHome)
	case key.Matches(msg, keys.Form.Submit):
		if r := validate.Email(m.email.Value()); !r.Valid {
			m.email = m.email.SetErrors(r.Error)
			return m, nil
		}
		m.step = StepPassword
		m.email = m.email.Blur()
		var cmd tea.Cmd
		m.passwords, cmd = m.passwords.FocusAt(fieldPassword)
		return m, cmd
	}
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m Model) updatePassword(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	var cmd tea.Cmd
	switch {
	case key.Matches(msg, keys.Form.Back):
		m.step = StepEmail
		m.email, cmd = m.email.Focus()
		return m, cmd
	case key.Matches(msg, keys.Form.Submit):
		if !m.passwords.AtLast() {
			m.passwords, cmd = m.passwords.Next()
			return m, cmd
		}
		return m.submit()
	case key.Matches(msg, keys.Form.Next):
		m.passwords, cmd = m.passwords.Next()
		return m, cmd
	case key.Matches(msg, keys.Form.Prev):
		m.passwords, cmd = m.passwords.Prev()
		return m, cmd
	}
	m.passwords, cmd = m.passwords.Update(msg)
	m.passwords = m.matchConfirm()
	return m, cmd
}

func (m Model) matchConfirm() inputgroup.Form {
	pw, confirm := m.passwords.Value(fieldPassword), m.passwords.Value(fieldConfirm)
	if confirm != "" && confirm != pw {
		return m.passwords.SetErrors(fieldConfirm, validate.MsgPasswordMismatch)
	}
	return m.passwords.SetErrors(fieldConfirm)
}

func (m Model) submit() (mode.Controller, tea.Cmd) {
	pw, confirm := m.passwords.Value(fieldPassword), m.passwords.Value(fieldConfirm)
	if errs := validate.NewPassword(pw, confirm); len(errs) > 0 {
		m.passwords = m.passwords.SetErrors(fieldPassword, validate.Password(pw).Errors...)
		m.passwords = m.matchConfirm()
		return m, nil
	}
	m.loading = true
	m.passwords = m.passwords.SetDisabled(true)
	updater, ctx, email := m.services.Passwords, m.services.Context(), strings.TrimSpace(m.email.Value())
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return updatedMsg{err: updater.UpdatePassword(ctx, email, pw)}
	})
}

// View implements mode.Controller.
func (m Model) View() string {
	var body string
	switch m.step {
	case StepEmail:
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Forgot your password?"),
			styles.SubtitleStyle.Width(formWidth).Render("Enter the email address of your account."),
			"",
			m.email.View(),
			"",
			styles.PrimaryButtonFocusedStyle.Render("Continue →"),
			"",
			styles.HelpStyle.Render(keys.Help(keys.Form.Submit, keys.Form.Back)),
		)
	case StepPassword:
		btn := styles.PrimaryButtonFocusedStyle.Render("Update Password →")
		if m.loading {
			btn = styles.DisabledButtonStyle.Render(m.spin.View() + " Updating...")
		}
		body = lipgloss.JoinVertical(lipgloss.Left,
			styles.TitleStyle.Render("Set New Password"),
			styles.SubtitleStyle.Width(formWidth).Render("Choose a strong new password for your account"),
			"",
			m.passwords.View(),
			"",
			btn,
			"",
			styles.HelpStyle.Render(keys.Help(keys.Form.Next, keys.Form.Submit, keys.Form.Back)),
		)
	case StepDone:
		body = lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Bold(true).Render("✔ Password Updated"),
			styles.SubtitleStyle.Width(formWidth).Render(
				"Your password has been updated successfully. You can now sign in with your new password."),
			"",
			styles.PrimaryButtonFocusedStyle.Render("Go to Sign in →"),
		)
	}
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, body)
}
