// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// GlobalKeys are handled by the root model on every screen.
type GlobalKeys struct {
	Quit    key.Binding
	Logs    key.Binding
	Dismiss key.Binding
}

// HomeKeys drive the landing page.
type HomeKeys struct {
	GetStarted key.Binding
	Forgot     key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Quit       key.Binding
}

// FormKeys move between and submit input groups.
type FormKeys struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Back   key.Binding
}

// OTPKeys are specific to the code entry step.
type OTPKeys struct {
	Resend key.Binding
	Back   key.Binding
	Verify key.Binding
}

// CurrencyKeys change the reporting currency selection.
type CurrencyKeys struct {
	Prev key.Binding
	Next key.Binding
}

// FallbackKeys are offered on the crash screen.
type FallbackKeys struct {
	Reload key.Binding
	Home   key.Binding
}

// Global is the root keymap.
var Global = GlobalKeys{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Logs: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "logs"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss"),
	),
}

// Home is the landing page keymap.
var Home = HomeKeys{
	GetStarted: key.NewBinding(
		key.WithKeys("enter", "g"),
		key.WithHelp("enter", "get started"),
	),
	Forgot: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "forgot password"),
	),
	ScrollUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "scroll up"),
	),
	ScrollDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "scroll down"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
}

// Form is the keymap shared by every input screen.
var Form = FormKeys{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "back"),
	),
}

// OTP is the code entry keymap.
var OTP = OTPKeys{
	Resend: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "resend code"),
	),
	Back: key.NewBinding(
		key.WithKeys("ctrl+b"),
		key.WithHelp("ctrl+b", "back to email"),
	),
	Verify: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "verify & continue"),
	),
}

// Currency is the currency selector keymap.
var Currency = CurrencyKeys{
	Prev: key.NewBinding(
		key.WithKeys("ctrl+p", "left"),
		key.WithHelp("←", "previous currency"),
	),
	Next: key.NewBinding(
		key.WithKeys("ctrl+n", "right"),
		key.WithHelp("→", "next currency"),
	),
}

// Fallback is the crash screen keymap.
var Fallback = FallbackKeys{
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Home: key.NewBinding(
		key.WithKeys("h"),
		key.WithHelp("h", "home"),
	),
}

// Help renders bindings as "key desc" pairs separated by two spaces.
func Help(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
