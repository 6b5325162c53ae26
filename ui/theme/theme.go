package theme

// Centralized theming and styling initialization for the launcher and its
// dialogs. Provides palette constants and InitStyles to activate a base theme
// and configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f5f5f5" // app and dialog background
	ColorSurface   = "#ffffff"
	ColorPrimary   = "#0078d4" // action buttons, selection border
	ColorSecondary = "#e0e0e0" // cancel / reset buttons
	ColorText      = "#333333"
	ColorTextMuted = "#888888"
	ColorDanger    = "#dc2626"
)

// FontFamily is the preferred UI font; Tk falls back when it is missing.
const FontFamily = "Segoe UI"

// style names used with Style("primary.TButton") etc.
const (
	StylePrimaryButton   = "primary.TButton"
	StyleSecondaryButton = "secondary.TButton"
	StyleTitleLabel      = "title.TLabel"
	StyleSubtitleLabel   = "subtitle.TLabel"
	StyleMutedLabel      = "muted.TLabel"
	StyleInfoLabel       = "info.TLabel"
)

// InitStyles activates the base theme and configures the semantic styles.
// Call once after Tk is initialized.
func InitStyles() {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(ColorBg))

	StyleConfigure(StylePrimaryButton,
		Background(ColorPrimary),
		Foreground("white"),
		Font(FontFamily, 11, "bold"),
		Padding("20p 10p"),
		Borderwidth(0),
		Relief("flat"),
	)
	StyleConfigure(StyleSecondaryButton,
		Background(ColorSecondary),
		Foreground(ColorText),
		Font(FontFamily, 11),
		Padding("20p 10p"),
		Borderwidth(0),
		Relief("flat"),
	)

	StyleConfigure(StyleTitleLabel, Background(ColorBg), Foreground(ColorText), Font(FontFamily, 20, "bold"))
	StyleConfigure(StyleSubtitleLabel, Background(ColorBg), Foreground(ColorText), Font(FontFamily, 12))
	StyleConfigure(StyleMutedLabel, Background(ColorBg), Foreground(ColorTextMuted), Font(FontFamily, 9))
	StyleConfigure(StyleInfoLabel, Background(ColorBg), Foreground(ColorPrimary), Font(FontFamily, 10, "bold"))
}
