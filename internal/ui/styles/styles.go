// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Brand
	BrandPrimaryColor   = lipgloss.AdaptiveColor{Light: "#003399", Dark: "#5B8DEF"}
	BrandSecondaryColor = lipgloss.AdaptiveColor{Light: "#2E9900", Dark: "#5FD35F"}

	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F2933", Dark: "#E4E7EB"}
	TextSecondaryColor   = lipgloss.AdaptiveColor{Light: "#52606D", Dark: "#BBBBBB"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#696969"}
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#777777"}

	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#CBD2D9", Dark: "#696969"}
	BorderFocusColor   = BrandPrimaryColor

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#E0A800", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#D64545", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#2680C2", Dark: "#54A0FF"}

	// Buttons
	ButtonTextColor           = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor      = lipgloss.AdaptiveColor{Light: "#003399", Dark: "#1A3F8F"}
	ButtonPrimaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#2E9900", Dark: "#2E9900"}
	ButtonDisabledBgColor     = lipgloss.AdaptiveColor{Light: "#9AA5B1", Dark: "#2D2D2D"}

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	PrimaryButtonStyle = baseButtonStyle.
				Foreground(ButtonTextColor).
				Background(ButtonPrimaryBgColor)

	PrimaryButtonFocusedStyle = baseButtonStyle.
					Foreground(ButtonTextColor).
					Background(ButtonPrimaryFocusBgColor).
					Underline(true).
					UnderlineSpaces(true)

	DisabledButtonStyle = baseButtonStyle.
				Foreground(TextMutedColor).
				Background(ButtonDisabledBgColor)

	// Form inputs
	InputLabelStyle        = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	InputFocusedLabelStyle = lipgloss.NewStyle().Foreground(BrandPrimaryColor).Bold(true)
	InputErrorStyle        = lipgloss.NewStyle().Foreground(StatusErrorColor)
	InputHintStyle         = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	// OTP slots
	OTPSlotStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderDefaultColor).
			Width(3).
			Align(lipgloss.Center)
	OTPSlotActiveStyle = OTPSlotStyle.BorderForeground(BorderFocusColor)

	// Screen chrome
	TitleStyle     = lipgloss.NewStyle().Foreground(BrandPrimaryColor).Bold(true)
	SubtitleStyle  = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	HelpStyle      = lipgloss.NewStyle().Foreground(TextMutedColor)
	CountdownStyle = lipgloss.NewStyle().Foreground(BrandSecondaryColor).Bold(true)
	ExpiredStyle   = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(BrandSecondaryColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Full-screen error fallback
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(1, 2)

	SpinnerColor = lipgloss.AdaptiveColor{Light: "#003399", Dark: "#FFF"}

	// Setup overlay
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#CBD2D9", Dark: "#8C8C8C"}
	ProgressFromColor  = "#003399"
	ProgressToColor    = "#2E9900"
)

// ApplyTheme overrides the brand colors from configuration.
// Empty strings keep the defaults.
func ApplyTheme(primary, secondary string) {
	if primary != "" {
		BrandPrimaryColor = lipgloss.AdaptiveColor{Light: primary, Dark: primary}
		BorderFocusColor = BrandPrimaryColor
		TitleStyle = TitleStyle.Foreground(BrandPrimaryColor)
		InputFocusedLabelStyle = InputFocusedLabelStyle.Foreground(BrandPrimaryColor)
		OTPSlotActiveStyle = OTPSlotActiveStyle.BorderForeground(BrandPrimaryColor)
		ProgressFromColor = primary
	}
	if secondary != "" {
		BrandSecondaryColor = lipgloss.AdaptiveColor{Light: secondary, Dark: secondary}
		CountdownStyle = CountdownStyle.Foreground(BrandSecondaryColor)
		SelectionIndicatorStyle = SelectionIndicatorStyle.Foreground(BrandSecondaryColor)
		ProgressToColor = secondary
	}
}
