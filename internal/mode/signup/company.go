package signup

import (
	"fmt"
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
	"github.com/proconsult/onboard/internal/services"
	"github.com/proconsult/onboard/internal/ui/banner"
	"github.com/proconsult/onboard/internal/ui/inputgroup"
	"github.com/proconsult/onboard/internal/ui/styles"
)

// MsgCurrenciesFailed is shown when the currency list cannot be loaded.
const MsgCurrenciesFailed = "Failed to load available currencies"

const (
	focusName = iota
	focusCurrency
)

type currenciesMsg struct{ err error }

type companyCreatedMsg struct {
	company *services.CompanyCreated
	err     error
}

// Company is the company profile screen.
type Company struct {
	services      mode.Services
	flow          *registration.Controller
	name          inputgroup.Model
	focus         int
	spin          spinner.Model
	loading       bool
	loadingList   bool
	width, height int
}

// NewCompany creates the company screen.
func NewCompany(services mode.Services) Company {
	name := inputgroup.New(inputgroup.Config{
		Label:       "Company Legal Name",
		Placeholder: "e.g. Acme Global Ltd",
		Required:    true,
		CharLimit:   120,
		Width:       formWidth - 4,
	})
	name, _ = name.Focus()
	return Company{
		services:    services,
		flow:        services.Flow,
		name:        name,
		spin:        newSpinner(),
		loadingList: true,
	}
}

// Title implements mode.Titled.
func (m Company) Title() string { return "Company Profile" }

// Step implements mode.Titled.
func (m Company) Step() (int, int) { return 2, Steps }

// Init loads the currency list.
func (m Company) Init() tea.Cmd {
	flow, ctx := m.flow, m.services.Context()
	return tea.Batch(textinput.Blink, m.spin.Tick, func() tea.Msg {
		_, err := flow.LoadCurrencies(ctx)
		return currenciesMsg{err: err}
	})
}

// SetSize implements mode.Controller.
func (m Company) SetSize(width, height int) mode.Controller {
	m.width, m.height = width, height
	return m
}

// Update implements mode.Controller.
func (m Company) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading && !m.loadingList {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case currenciesMsg:
		m.loadingList = false
		if msg.err != nil {
			log.ErrorErr(log.CatUI, "Loading currencies failed", msg.err)
			return m, func() tea.Msg {
				return mode.ShowBannerMsg{Kind: banner.KindError, Message: MsgCurrenciesFailed}
			}
		}
		return m, nil

	case companyCreatedMsg:
		m.loading = false
		m.name = m.name.SetDisabled(false)
		if msg.err != nil {
			return m, mode.ShowError(msg.err)
		}
		return m, tea.Batch(
			mode.ShowSuccess(fmt.Sprintf("Company %s created", msg.company.Name)),
			mode.Navigate(registration.RouteCreateUser),
		)

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m Company) updateKeys(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Form.Next), key.Matches(msg, keys.Form.Prev):
		if m.focus == focusName {
			m.focus = focusCurrency
			m.name = m.name.Blur()
			return m, nil
		}
		m.focus = focusName
		var cmd tea.Cmd
		m.name, cmd = m.name.Focus()
		return m, cmd

	case key.Matches(msg, keys.Form.Submit):
		return m.submit()
	}

	if m.focus == focusCurrency {
		list, selected := m.flow.Currencies()
		switch {
		case key.Matches(msg, keys.Currency.Prev) && selected > 0:
			m.flow.SelectCurrency(selected - 1)
		case key.Matches(msg, keys.Currency.Next) && selected < len(list)-1:
			m.flow.SelectCurrency(selected + 1)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	if strings.TrimSpace(m.name.Value()) != "" {
		m.name = m.name.SetErrors()
	}
	return m, cmd
}

func (m Company) submit() (mode.Controller, tea.Cmd) {
	if strings.TrimSpace(m.name.Value()) == "" {
		m.name = m.name.SetErrors(registration.MsgCompanyName)
		return m, nil
	}
	m.loading = true
	m.name = m.name.SetDisabled(true)
	flow, ctx := m.flow, m.services.Context()
	form := registration.CompanyForm{Name: m.name.Value()}
	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		created, err := flow.CreateCompany(ctx, form)
		return companyCreatedMsg{company: created, err: err}
	})
}

// View implements mode.Controller.
func (m Company) View() string {
	email := m.flow.Session().VerifiedEmail()
	verified := styles.InputLabelStyle.Render("Corporate Email Address (Verified)") + "\n" +
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderDefaultColor).
			Padding(0, 1).
			Faint(true).
			Width(formWidth - 2).
			Render(email + " ✔")

	_, selected := m.flow.Currencies()
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.name.View(),
		"",
		verified,
		"",
		m.currencyView(),
		"",
		button("Create Company", "Creating...", m.loading, m.loadingList || selected < 0, m.spin),
		"",
		styles.HelpStyle.Render(keys.Help(keys.Form.Next, keys.Currency.Prev, keys.Currency.Next, keys.Form.Submit)),
	)
	return center(m.width, m.height, section(
		"Company profile",
		"Tell us about your organisation. Reporting defaults can be changed later.",
		body))
}

func (m Company) currencyView() string {
	labelStyle := styles.InputLabelStyle
	if m.focus == focusCurrency {
		labelStyle = styles.InputFocusedLabelStyle
	}
	label := labelStyle.Render("Reporting Currency *")

	list, selected := m.flow.Currencies()
	var value string
	switch {
	case m.loadingList:
		value = m.spin.View() + " Loading currencies..."
	case len(list) == 0 || selected < 0:
		value = styles.InputErrorStyle.Render(registration.ErrNoCurrencies.Error())
	default:
		c := list[selected]
		value = fmt.Sprintf("‹ %s · %s ›", c.CurrencyCode, c.CurrencyName)
		if m.focus == focusCurrency {
			value = styles.SelectionIndicatorStyle.Render(value)
		}
	}
	return label + "\n" + value
}
