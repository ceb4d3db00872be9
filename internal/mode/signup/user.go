package signup

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/inputgroup"
	"github.com/proconsult/onboard/internal/ui/styles"
	"github.com/proconsult/onboard/internal/validate"
)

// Field indexes of the administrator form.
const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
	fieldPhone
	fieldAddress
)

type setupDoneMsg struct{ err error }

// User is the administrator account screen. Submitting it provisions the
// account and the demo lease; the setup overlay is driven by the root model.
type User struct {
	services      mode.Services
	flow          *registration.Controller
	form          inputgroup.Form
	spin          spinner.Model
	loading       bool
	width, height int
}

// NewUser creates the administrator screen.
func NewUser(services mode.Services) User {
	w := formWidth - 4
	form, _ := inputgroup.NewForm(
		inputgroup.Config{Label: "Full Name / Username", Placeholder: "e.g. John Doe", Required: true, CharLimit: 100, Width: w},
		inputgroup.Config{Label: "Password", Placeholder: "••••••••", Required: true, Password: true, CharLimit: 128, Width: w},
		inputgroup.Config{Label: "Confirm Password", Placeholder: "••••••••", Required: true, Password: true, CharLimit: 128, Width: w},
		inputgroup.Config{Label: "Phone Number (Optional)", Placeholder: "+1 (555) 000-0000", CharLimit: 32, Width: w},
		inputgroup.Config{Label: "Physical Address (Optional)", Placeholder: "Street, City, Country", CharLimit: 200, Width: w},
	)
	return User{services: services, flow: services.Flow, form: form, spin: newSpinner()}
}

// Title implements mode.Titled.
func (m User) Title() string { return "Administrator" }

// Step implements mode.Titled.
func (m User) Step() (int, int) { return 3, Steps }

// Init implements mode.Controller.
func (m User) Init() tea.Cmd {
	return textinput.Blink
}

// SetSize implements mode.Controller.
func (m User) SetSize(width, height int) mode.Controller {
	m.width, m.height = width, height
	return m
}

// Update implements mode.Controller.
func (m User) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case setupDoneMsg:
		m.loading = false
		m.form = m.form.SetDisabled(false)
		return m, mode.ShowError(msg.err)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		switch {
		case key.Matches(msg, keys.Form.Submit):
			if !m.form.AtLast() {
				return m.next()
			}
			return m.submit()
		case key.Matches(msg, keys.Form.Next):
			return m.next()
		case key.Matches(msg, keys.Form.Prev):
			var cmd tea.Cmd
			m.form, cmd = m.form.Prev()
			return m, cmd
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		m.form = m.revalidate()
		return m, cmd
	}
	return m, nil
}

func (m User) next() (mode.Controller, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Next()
	return m, cmd
}

// revalidate refreshes the password messages. Nothing is shown for a field
// that is still empty.
func (m User) revalidate() inputgroup.Form {
	f := m.form
	pw, confirm := f.Value(fieldPassword), f.Value(fieldConfirm)
	if pw == "" {
		f = f.SetErrors(fieldPassword)
	} else {
		f = f.SetErrors(fieldPassword, validate.Password(pw).Errors...)
	}
	if confirm != "" && confirm != pw {
		f = f.SetErrors(fieldConfirm, validate.MsgPasswordMismatch)
	} else {
		f = f.SetErrors(fieldConfirm)
	}
	return f
}

func (m User) blocked() bool {
	return strings.TrimSpace(m.form.Value(fieldUsername)) == "" ||
		m.form.Value(fieldPassword) == "" ||
		m.form.Value(fieldConfirm) == "" ||
		len(m.form.Field(fieldConfirm).Errors()) > 0
}

func (m User) submit() (mode.Controller, tea.Cmd) {
	if m.blocked() {
		return m, nil
	}
	form := registration.UserForm{
		Username:    m.form.Value(fieldUsername),
		Password:    m.form.Value(fieldPassword),
		Confirm:     m.form.Value(fieldConfirm),
		PhoneNumber: m.form.Value(fieldPhone),
		Address:     m.form.Value(fieldAddress),
	}
	m.loading = true
	m.form = m.form.SetDisabled(true)
	flow, ctx := m.flow, m.services.Context()
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		return setupDoneMsg{err: flow.CompleteSetup(ctx, form)}
	})
}

// View implements mode.Controller.
func (m User) View() string {
	email := styles.InputLabelStyle.Render("Email Address") + "\n" +
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderDefaultColor).
			Padding(0, 1).
			Faint(true).
			Width(formWidth - 2).
			Render(m.flow.Session().VerifiedEmail())

	var strength string
	if pw := m.form.Value(fieldPassword); pw != "" && validate.Password(pw).Strong {
		strength = "\n" + lipgloss.NewStyle().Foreground(styles.StatusSuccessColor).Bold(true).Render("✔ PASSWORD IS STRONG")
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		email,
		"",
		m.form.View()+strength,
		"",
		button("Complete Setup", "Setting up...", m.loading, m.blocked(), m.spin),
		"",
		styles.HelpStyle.Render(keys.Help(keys.Form.Next, keys.Form.Prev, keys.Form.Submit)),
	)
	return center(m.width, m.height, section(
		"Administrator account",
		"Create the first user of your workspace. A demo lease is added automatically.",
		body))
}
