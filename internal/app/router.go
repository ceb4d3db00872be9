package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/mode"
	"github.com/proconsult/onboard/internal/mode/home"
	"github.com/proconsult/onboard/internal/mode/recovery"
	"github.com/proconsult/onboard/internal/mode/signup"
	"github.com/proconsult/onboard/internal/registration"
)

// maxRedirects bounds guard chains.
const maxRedirects = 3

// open replaces the screen with the one for route. Routes guarded by the
// registration flow are redirected when the session lacks a prerequisite.
// Unknown routes open home.
func (m Model) open(route registration.Route) (Model, tea.Cmd) {
	for range maxRedirects {
		to, ok := m.guard(route)
		if !ok {
			break
		}
		log.Info(log.CatFlow, "Redirecting", "from", string(route), "to", string(to))
		route = to
	}

	var screen mode.Controller
	switch route {
	case registration.RouteVerifyEmail:
		screen = signup.NewOTP(m.services)
	case registration.RouteCreateCompany:
		screen = signup.NewCompany(m.services)
	case registration.RouteCreateUser:
		screen = signup.NewUser(m.services)
	case registration.RouteForgotPassword:
		screen = recovery.New(m.services)
	default:
		route = registration.RouteHome
		screen = home.New(m.services)
	}

	log.Debug(log.CatUI, "Opening screen", "route", string(route))
	m.route = route
	m.crash = nil
	m.screen = screen.SetSize(m.width, m.bodyHeight())
	return m, m.screen.Init()
}

// guard returns the route to go to instead of route, if any.
func (m Model) guard(route registration.Route) (registration.Route, bool) {
	flow := m.services.Flow
	if flow == nil {
		return "", false
	}
	var err error
	switch route {
	case registration.RouteCreateCompany:
		err = flow.EnterCompanyStep()
	case registration.RouteCreateUser:
		err = flow.EnterUserStep()
	}
	return registration.RedirectOf(err)
}
