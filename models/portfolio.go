package models

// Socials holds optional public contact links for the portfolio
type Socials struct {
	Twitter  string `json:"twitter,omitempty"`
	Github   string `json:"github,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
	Email    string `json:"email,omitempty"`
}

// PortfolioSettings represents the public branding of the founder's studio
type PortfolioSettings struct {
	CompanyName string   `json:"companyName"`
	FounderName string   `json:"founderName"`
	Bio         string   `json:"bio"`
	LogoEmoji   string   `json:"logoEmoji"`
	AccentColor string   `json:"accentColor"`
	Socials     *Socials `json:"socials,omitempty"`
}

// DefaultPortfolio returns the settings used before the founder customizes anything
func DefaultPortfolio() PortfolioSettings {
	return PortfolioSettings{
		CompanyName: "VibeCode Studios",
		FounderName: "Anon_Dev",
		Bio:         "Building the future, one prompt at a time.",
		LogoEmoji:   "⚡",
		AccentColor: "cyan",
		Socials:     &Socials{},
	}
}
