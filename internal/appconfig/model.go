package appconfig

// AppBanner is a dismissible announcement rendered by the client.
type AppBanner struct {
	Enabled     bool   `json:"enabled"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"` // info, promo or alert
	CtaText     string `json:"ctaText,omitempty"`
	CtaAction   string `json:"ctaAction,omitempty"`
}

type FeaturedStyle struct {
	ID    string `json:"id"`
	Icon  string `json:"icon"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

type Headline struct {
	Main   string `json:"main"`
	Accent string `json:"accent"`
}

type HobbyistPlan struct {
	Name  string   `json:"name"`
	Price int      `json:"price"`
	Perks []string `json:"perks"`
}

type FounderPlan struct {
	Name         string   `json:"name"`
	MonthlyPrice int      `json:"monthlyPrice"`
	YearlyPrice  int      `json:"yearlyPrice"`
	Perks        []string `json:"perks"`
	Badge        string   `json:"badge,omitempty"`
}

type Plans struct {
	Hobbyist HobbyistPlan `json:"hobbyist"`
	Founder  FounderPlan  `json:"founder"`
}

type Pricing struct {
	Currency string `json:"currency"`
	Plans    Plans  `json:"plans"`
}

// AppConfig is the remotely managed application configuration. Fields
// missing from the remote document keep their compiled-in defaults.
type AppConfig struct {
	Headline       Headline        `json:"headline"`
	Banners        []AppBanner     `json:"banners"`
	FeaturedStyles []FeaturedStyle `json:"featuredStyles"`
	QuickPrompts   []string        `json:"quickPrompts"`
	Pricing        Pricing         `json:"pricing"`
}

// Defaults is the configuration served when the remote document is
// missing or unreadable.
func Defaults() AppConfig {
	return AppConfig{
		Headline: Headline{
			Main:   "Name your",
			Accent: "next big thing.",
		},
		Banners: []AppBanner{},
		FeaturedStyles: []FeaturedStyle{
			{ID: "Neo-Latin", Icon: "auto_awesome", Label: "Modern Latin", Desc: "Professional"},
			{ID: "Compound", Icon: "join_inner", Label: "Mix of Words", Desc: "Combining ideas"},
			{ID: "Real Word", Icon: "title", Label: "Simple Words", Desc: "Dictionary words"},
			{ID: "Descriptive", Icon: "description", Label: "Descriptive", Desc: "Explains your idea"},
			{ID: "Phrase", Icon: "format_quote", Label: "Short Phrases", Desc: "Multiple words"},
			{ID: "Humorous", Icon: "sentiment_very_satisfied", Label: "Funny Names", Desc: "Creative and fun"},
			{ID: "Abstract", Icon: "bubble_chart", Label: "Creative Sounds", Desc: "Short and catchy"},
		},
		QuickPrompts: []string{
			"SaaS for Dog Walkers",
			"AI Legal Assistant",
			"Sustainable Coffee Brand",
			"Fitness Tracker App",
		},
		Pricing: Pricing{
			Currency: "$",
			Plans: Plans{
				Hobbyist: HobbyistPlan{
					Name:  "Hobbyist",
					Price: 0,
					Perks: []string{"3 names per day", "Basic AI styles", "View history", "Standard results"},
				},
				Founder: FounderPlan{
					Name:         "Founder Pro",
					MonthlyPrice: 15,
					YearlyPrice:  12,
					Badge:        "Popular",
					Perks: []string{
						"Unlimited generations",
						"All premium AI styles",
						"Domain availability check",
						"Full history access",
						"Priority support",
					},
				},
			},
		},
	}
}
