package domain

// Session is the authentication gate state. Credentials are accepted and
// discarded; only the authenticated flag and display fields survive.
type Session struct {
	Authenticated bool   `json:"authenticated"`
	DisplayName   string `json:"display_name,omitempty"`
	Email         string `json:"email,omitempty"`
}

// CustomTheme holds the cosmetic appearance preferences persisted for
// the profile page.
type CustomTheme struct {
	BackgroundColor string `json:"backgroundColor"`
	TextColor       string `json:"textColor"`
	GlowEnabled     bool   `json:"glowEnabled"`
}

// DefaultCustomTheme returns the stock appearance settings.
func DefaultCustomTheme() CustomTheme {
	return CustomTheme{
		BackgroundColor: "#ffffff",
		TextColor:       "#16a34a",
		GlowEnabled:     true,
	}
}
