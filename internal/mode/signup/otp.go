package signup

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/proconsult/onboard/internal/keys"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/registration"
	"github.com/proconsult/onboard/internal/ui/banner"
	"github.com/proconsult/onboard/internal/ui/inputgroup"
	"github.com/proconsult/onboard/internal/ui/styles"
	"github.com/proconsult/onboard/internal/validate"
)

// CountdownInterval is the OTP countdown resolution.
const CountdownInterval = time.Second

type otpSentMsg struct {
	err    error
	resend bool
}

type otpVerifiedMsg struct{ err error }

type countdownMsg struct{ gen int }

// OTP is the email verification screen: email entry, then code entry.
type OTP struct {
	services mode.Services
	flow     *registration.Controller
	email    inputgroup.Model
	spin     spinner.Model
	loading  bool
	// gen tags countdown ticks so a restarted countdown drops old ones.
	gen           int
	expiredShown  bool
	width, height int
}

// NewOTP creates the verification screen.
func NewOTP(services mode.Services) OTP {
	email := inputgroup.New(inputgroup.Config{
		Label:       "Email Address",
		Placeholder: "admin@company.com",
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
	return OTP{services: services, flow: services.Flow, email: email, spin: newSpinner()}
}

// Title implements mode.Titled.
func (m OTP) Title() string { return "Verify Email" }

// Step implements mode.Titled.
func (m OTP) Step() (int, int) { return 1, Steps }

// Init focuses the email input and resumes a pending countdown.
func (m OTP) Init() tea.Cmd {
	if m.verifying() {
		return tea.Batch(textinput.Blink, countdown(m.gen))
	}
	return textinput.Blink
}

// SetSize implements mode.Controller.
func (m OTP) SetSize(width, height int) mode.Controller {
	m.width, m.height = width, height
	return m
}

func (m OTP) verifying() bool {
	_, ok := m.flow.Challenge()
	return ok && m.flow.State() == registration.StateOTPPending
}

// Update implements mode.Controller.
func (m OTP) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case otpSentMsg:
		m.loading = false
		m.email = m.email.SetDisabled(false)
		if msg.err != nil {
			return m, mode.ShowError(msg.err)
		}
		m.gen++
		m.expiredShown = false
		cmds := []tea.Cmd{countdown(m.gen)}
		if msg.resend {
			cmds = append(cmds, mode.ShowSuccess("A new code has been sent to "+m.email.Value()))
		}
		return m, tea.Batch(cmds...)

	case otpVerifiedMsg:
		m.loading = false
		if msg.err != nil {
			return m, mode.ShowError(msg.err)
		}
		m.gen++
		return m, mode.Navigate(registration.RouteCreateCompany)

	case countdownMsg:
		if msg.gen != m.gen || !m.verifying() {
			return m, nil
		}
		remaining, _ := m.flow.Tick()
		if remaining > 0 {
			return m, countdown(m.gen)
		}
		if !m.expiredShown {
			m.expiredShown = true
			return m, mode.ShowError(registration.ErrOTPExpired)
		}
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		if m.verifying() {
			return m.updateCode(msg)
		}
		return m.updateEmail(msg)
	}
	return m, nil
}

func (m OTP) updateEmail(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if key.Matches(msg, keys.Form.Submit) {
		if m.emailBlocked() {
			return m, nil
		}
		m.loading = true
		m.email = m.email.SetDisabled(true)
		flow, ctx, email := m.flow, m.services.Context(), m.email.Value()
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return otpSentMsg{err: flow.SendOtp(ctx, email)}
		})
	}
	var cmd tea.Cmd
	m.email, cmd = m.email.Update(msg)
	return m, cmd
}

func (m OTP) emailBlocked() bool {
	return strings.TrimSpace(m.email.Value()) == "" || len(m.email.Errors()) > 0
}

func (m OTP) updateCode(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	flow, ctx := m.flow, m.services.Context()
	switch {
	case key.Matches(msg, keys.OTP.Resend):
		m.loading = true
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return otpSentMsg{err: flow.Resend(ctx), resend: true}
		})

	case key.Matches(msg, keys.OTP.Back):
		m.flow.BackToEmail()
		m.gen++
		return m, nil

	case key.Matches(msg, keys.OTP.Verify):
		view, _ := m.flow.Challenge()
		if len(view.Code) != registration.OTPLength {
			return m, func() tea.Msg {
				return mode.ShowBannerMsg{Kind: banner.KindError, Message: registration.MsgOTPLength}
			}
		}
		m.loading = true
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return otpVerifiedMsg{err: flow.VerifyOtp(ctx, view.Code)}
		})

	case msg.Type == tea.KeyBackspace:
		m.flow.DeleteDigit()

	case msg.Type == tea.KeyRunes:
		for _, r := range msg.Runes {
			m.flow.TypeDigit(r)
		}
	}
	return m, nil
}

// View implements mode.Controller.
func (m OTP) View() string {
	var body string
	if view, ok := m.flow.Challenge(); ok && m.verifying() {
		body = section("Enter verification code",
			"We sent a 6-digit code to "+view.Email+".",
			m.codeView(view))
	} else {
		body = section("Verify your email",
			"We'll send a one-time password (OTP) to verify your email address.",
			m.email.View()+"\n\n"+
				button("Send Code", "Sending OTP...", m.loading, m.emailBlocked(), m.spin)+"\n\n"+
				styles.HelpStyle.Render(keys.Help(keys.Form.Submit)))
	}
	return center(m.width, m.height, body)
}

func (m OTP) codeView(view registration.ChallengeView) string {
	slots := make([]string, 0, registration.OTPLength)
	active := len(view.Code)
	for i, s := range view.Slots {
		style := styles.OTPSlotStyle
		if i == active {
			style = styles.OTPSlotActiveStyle
		}
		if s == "" {
			s = " "
		}
		slots = append(slots, style.Render(s))
	}

	timer := styles.CountdownStyle.Render("Code expires in " + registration.FormatRemaining(view.Remaining))
	if view.Expired {
		timer = styles.ExpiredStyle.Render("Code expired, request a new one")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.InputLabelStyle.Render("6-Digit Code"),
		lipgloss.JoinHorizontal(lipgloss.Top, slots...),
		timer,
		"",
		button("Verify & Continue", "Verifying...", m.loading, len(view.Code) != registration.OTPLength, m.spin),
		"",
		styles.HelpStyle.Render(keys.Help(keys.OTP.Verify, keys.OTP.Resend, keys.OTP.Back)),
	)
}

func countdown(gen int) tea.Cmd {
	return tea.Tick(CountdownInterval, func(time.Time) tea.Msg {
		return countdownMsg{gen: gen}
	})
}
