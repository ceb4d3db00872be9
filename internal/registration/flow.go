package registration

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/proconsult/onboard/internal/config"
	"github.com/proconsult/onboard/internal/log"
	"github.com/proconsult/onboard/internal/services"
	"github.com/proconsult/onboard/internal/validate"
)

// State is a step of the registration flow.
type State int

const (
	StateEmailEntry State = iota
	StateOTPPending
	StateOTPVerified
	StateCompanyCreated
	StateProvisioning
	StateDone
)

func (s State) String() string {
	switch s {
	case StateEmailEntry:
		return "EMAIL_ENTRY"
	case StateOTPPending:
		return "OTP_PENDING"
	case StateOTPVerified:
		return "OTP_VERIFIED"
	case StateCompanyCreated:
		return "COMPANY_CREATED"
	case StateProvisioning:
		return "PROVISIONING"
	case StateDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

// RegistrationAPI is the identity service surface the flow needs.
type RegistrationAPI interface {
	SendOtp(ctx context.Context, email string) (*services.SendOtpResponse, error)
	VerifyOtp(ctx context.Context, email, code string) (*services.VerifyOtpResponse, error)
	CheckUserExists(ctx context.Context, email string) (bool, error)
	CreateCompany(ctx context.Context, req services.CompanyRequest) (*services.CompanyCreated, error)
	CreateUser(ctx context.Context, req services.UserRequest) (*services.UserCreated, error)
}

// LeaseAPI provisions the demo lease.
type LeaseAPI interface {
	CreateDemoLease(ctx context.Context, req services.LeaseRequest) (*services.LeaseCreated, error)
}

// CurrencyAPI lists currencies.
type CurrencyAPI interface {
	GetAllCurrencies(ctx context.Context) ([]services.Currency, error)
}

// CompanyForm is the input of the company step.
type CompanyForm struct {
	Name string
}

// UserForm is the input of the administrator step.
type UserForm struct {
	Username    string
	Password    string
	Confirm     string
	PhoneNumber string
	Address     string
}

// Deps configures a Controller.
type Deps struct {
	Registration RegistrationAPI
	Leases       LeaseAPI
	Currencies   CurrencyAPI

	CompanyDefaults config.CompanyDefaults
	LeaseDefaults   config.LeaseDefaults
	// MinOverlay is the minimum time between submitting the user step and
	// showing success.
	MinOverlay time.Duration

	Clock Clock
	// Suffix returns the registration number suffix, 100..999.
	Suffix func() int
}

// ChallengeView is a snapshot of the pending OTP challenge.
type ChallengeView struct {
	Email     string
	Slots     [OTPLength]string
	Code      string
	Remaining int
	Expired   bool
}

// Controller drives the registration wizard. It is safe for concurrent use;
// a second request while one is in flight fails with ErrBusy.
type Controller struct {
	deps    Deps
	session *Session
	overlay *Overlay

	mu         sync.Mutex
	busy       bool
	state      State
	challenge  *Challenge
	currencies []services.Currency
	selected   int
}

// NewController creates a controller for session.
func NewController(session *Session, deps Deps) *Controller {
	if deps.Clock == nil {
		deps.Clock = RealClock
	}
	if deps.Suffix == nil {
		deps.Suffix = func() int { return 100 + rand.IntN(900) }
	}
	if deps.MinOverlay <= 0 {
		deps.MinOverlay = config.DefaultMinOverlay
	}
	return &Controller{
		deps:     deps,
		session:  session,
		overlay:  NewOverlay(),
		selected: -1,
	}
}

// Session returns the session the controller writes to.
func (c *Controller) Session() *Session { return c.session }

// Overlay returns the setup overlay.
func (c *Controller) Overlay() *Overlay { return c.overlay }

// State returns the current step.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a request is in flight.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.busy
}

func (c *Controller) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	c.busy = true
	return nil
}

// beginUnless is begin for submissions that must not repeat once the flow
// has reached done.
func (c *Controller) beginUnless(done State) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.busy {
		return ErrBusy
	}
	if c.state >= done {
		log.Warn(log.CatFlow, "Step already complete", "state", c.state.String())
		return ErrStepComplete
	}
	c.busy = true
	return nil
}

func (c *Controller) end() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
}

// setState must be called with c.mu held.
func (c *Controller) setState(s State) {
	if c.state != s {
		log.Debug(log.CatFlow, "State changed", "from", c.state.String(), "to", s.String())
	}
	c.state = s
}

// SendOtp validates email, asks the backend to send a code and starts a new
// challenge.
func (c *Controller) SendOtp(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if res := validate.Email(email); !res.Valid {
		return invalid("email", res.Error)
	}
	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.deps.Registration.SendOtp(ctx, email); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.challenge = NewChallenge(email)
	c.setState(StateOTPPending)
	log.Info(log.CatFlow, "OTP sent", "email", email)
	return nil
}

// Resend sends a fresh code to the pending challenge's email, restarting
// the countdown and clearing the typed code.
func (c *Controller) Resend(ctx context.Context) error {
	c.mu.Lock()
	ch := c.challenge
	c.mu.Unlock()
	if ch == nil {
		return ErrNoChallenge
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	if _, err := c.deps.Registration.SendOtp(ctx, ch.Email()); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.challenge == ch {
		ch.Restart()
	}
	log.Info(log.CatFlow, "OTP resent", "email", ch.Email())
	return nil
}

// BackToEmail abandons the pending challenge.
func (c *Controller) BackToEmail() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.challenge = nil
	if c.state == StateOTPPending {
		c.setState(StateEmailEntry)
	}
}

// Tick counts the pending challenge down by one second. It returns the
// seconds left and false when no challenge is pending.
func (c *Controller) Tick() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.challenge == nil || c.state != StateOTPPending {
		return 0, false
	}
	if c.challenge.Tick() {
		log.Info(log.CatFlow, "OTP expired", "email", c.challenge.Email())
	}
	return c.challenge.Remaining(), true
}

// TypeDigit fills the next OTP slot.
func (c *Controller) TypeDigit(d rune) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.challenge != nil {
		c.challenge.Type(d)
	}
}

// DeleteDigit empties the last filled OTP slot.
func (c *Controller) DeleteDigit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.challenge != nil {
		c.challenge.Backspace()
	}
}

// Challenge returns a snapshot of the pending challenge.
func (c *Controller) Challenge() (ChallengeView, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.challenge == nil {
		return ChallengeView{}, false
	}
	return ChallengeView{
		Email:     c.challenge.Email(),
		Slots:     c.challenge.Slots(),
		Code:      c.challenge.Code(),
		Remaining: c.challenge.Remaining(),
		Expired:   c.challenge.Expired(),
	}, true
}

// VerifyOtp submits code for the pending challenge. A rejected code leaves
// the challenge and its countdown untouched.
func (c *Controller) VerifyOtp(ctx context.Context, code string) error {
	c.mu.Lock()
	ch := c.challenge
	expired := ch != nil && ch.Expired()
	c.mu.Unlock()

	if ch == nil {
		return ErrRedirect{To: RouteVerifyEmail}
	}
	if expired {
		return ErrOTPExpired
	}
	if !validate.OTP(code) {
		return invalid("otp", MsgOTPLength)
	}

	if err := c.begin(); err != nil {
		return err
	}
	defer c.end()

	resp, err := c.deps.Registration.VerifyOtp(ctx, ch.Email(), code)
	if err != nil {
		return err
	}
	if resp == nil || !resp.Success {
		log.Warn(log.CatFlow, "OTP rejected", "email", ch.Email())
		return &services.BusinessRuleError{Op: "verify otp", Message: MsgInvalidOTP}
	}

	c.session.Verify(ch.Email())

	c.mu.Lock()
	defer c.mu.Unlock()
	c.challenge = nil
	c.setState(StateOTPVerified)
	log.Info(log.CatFlow, "Email verified", "email", ch.Email())
	return nil
}

// EnterCompanyStep checks the session allows the company step.
func (c *Controller) EnterCompanyStep() error {
	if c.session.VerifiedEmail() == "" {
		return ErrRedirect{To: RouteVerifyEmail}
	}
	return nil
}

// LoadCurrencies fetches the currency list and preselects the default
// currency. On failure the list is left empty.
func (c *Controller) LoadCurrencies(ctx context.Context) ([]services.Currency, error) {
	list, err := c.deps.Currencies.GetAllCurrencies(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.currencies = nil
	c.selected = -1
	if err != nil {
		return nil, err
	}

	c.currencies = list
	if def, ok := DefaultCurrency(list, c.deps.CompanyDefaults.ReportingCurrencyCode); ok {
		for i, cur := range list {
			if cur.CurrencyID == def.CurrencyID {
				c.selected = i
				break
			}
		}
	}
	return list, nil
}

// Currencies returns the loaded currencies and the selected index (-1 when
// none is selected).
func (c *Controller) Currencies() ([]services.Currency, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currencies, c.selected
}

// SelectCurrency selects the loaded currency at index i.
func (c *Controller) SelectCurrency(i int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i < 0 || i >= len(c.currencies) {
		return false
	}
	c.selected = i
	return true
}

// CreateCompany registers the company for the verified email. Registered
// emails are refused before any company is created, and a session that
// already has a company gets ErrStepComplete.
func (c *Controller) CreateCompany(ctx context.Context, form CompanyForm) (*services.CompanyCreated, error) {
	if err := c.EnterCompanyStep(); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(form.Name)
	if name == "" {
		return nil, invalid("name", MsgCompanyName)
	}

	c.mu.Lock()
	var cur services.Currency
	hasCurrency := c.selected >= 0 && c.selected < len(c.currencies)
	if hasCurrency {
		cur = c.currencies[c.selected]
	}
	c.mu.Unlock()
	if !hasCurrency {
		return nil, ErrNoCurrencies
	}

	if err := c.beginUnless(StateCompanyCreated); err != nil {
		return nil, err
	}
	defer c.end()

	email := c.session.VerifiedEmail()
	exists, err := c.deps.Registration.CheckUserExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		log.Warn(log.CatFlow, "Email already registered", "email", email)
		return nil, &services.BusinessRuleError{Op: "create company", Message: MsgEmailRegistered}
	}

	req := BuildCompanyRequest(name, cur, c.deps.CompanyDefaults, c.deps.Clock.Now(), c.deps.Suffix())
	created, err := c.deps.Registration.CreateCompany(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := c.session.WithCompany(created.CompanyID, cur.CurrencyID); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.setState(StateCompanyCreated)
	log.Info(log.CatFlow, "Company step complete", "company_id", created.CompanyID, "currency", cur.CurrencyCode)
	return created, nil
}

// EnterUserStep checks the session allows the administrator step.
func (c *Controller) EnterUserStep() error {
	if c.session.VerifiedEmail() == "" || c.session.CompanyID() == 0 {
		return ErrRedirect{To: RouteHome}
	}
	return nil
}

// CompleteSetup creates the administrator and the demo lease. The loading
// overlay is raised on submission and replaced by the success overlay no
// sooner than MinOverlay after it. Any failure hides the overlay at once.
// A lease failure leaves the created user in place. Once the flow is done
// further calls return ErrStepComplete.
func (c *Controller) CompleteSetup(ctx context.Context, form UserForm) error {
	if err := c.EnterUserStep(); err != nil {
		return err
	}
	if strings.TrimSpace(form.Username) == "" {
		return invalid("username", MsgUsername)
	}
	if errs := validate.NewPassword(form.Password, form.Confirm); len(errs) > 0 {
		return invalid("password", errs...)
	}

	if err := c.beginUnless(StateDone); err != nil {
		return err
	}
	defer c.end()

	start := c.deps.Clock.Now()
	c.overlay.SetLoading()
	c.mu.Lock()
	c.setState(StateProvisioning)
	c.mu.Unlock()

	fail := func(err error) error {
		c.overlay.Clear()
		c.mu.Lock()
		c.setState(StateCompanyCreated)
		c.mu.Unlock()
		return err
	}

	email := c.session.VerifiedEmail()
	companyID := c.session.CompanyID()

	user, err := c.deps.Registration.CreateUser(ctx, BuildUserRequest(form, email, companyID))
	if err != nil {
		return fail(err)
	}

	lease := BuildDemoLease(c.deps.LeaseDefaults, companyID, c.session.CurrencyID(), *user, strings.TrimSpace(form.Username))
	if _, err := c.deps.Leases.CreateDemoLease(ctx, lease); err != nil {
		log.ErrorErr(log.CatFlow, "Demo lease failed after user creation", err, "user_id", user.UserID)
		return fail(err)
	}

	if wait := c.deps.MinOverlay - c.deps.Clock.Now().Sub(start); wait > 0 {
		select {
		case <-c.deps.Clock.After(wait):
		case <-ctx.Done():
			return fail(ctx.Err())
		}
	}

	c.overlay.SetSuccess()
	c.mu.Lock()
	c.setState(StateDone)
	c.mu.Unlock()
	log.Info(log.CatFlow, "Account provisioned", "company_id", companyID, "user_id", user.UserID)
	return nil
}

// Reset clears the session, the challenge and the overlay.
func (c *Controller) Reset() {
	c.session.Reset()
	c.overlay.Clear()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.challenge = nil
	c.currencies = nil
	c.selected = -1
	c.setState(StateEmailEntry)
}
