package namegen

import "github.com/namelime/namelime-backend/internal/generation/domain"

// fallbackCandidates is served when the generation API fails or returns
// nothing usable, so a transient provider outage never yields an error
// where a name list is expected.
func fallbackCandidates() []domain.GeneratedName {
	return []domain.GeneratedName{
		{
			ID:        "err-1",
			Name:      "Velocify",
			Archetype: domain.StyleNeoLatin,
			Reasoning: "Implies speed and action instantly.",
			Domains: []domain.DomainOption{
				{TLD: ".io", Available: true, Premium: false},
				{TLD: ".com", Available: false, Premium: true},
			},
		},
		{
			ID:        "err-2",
			Name:      "Second Brain",
			Archetype: domain.StyleAbstract,
			Reasoning: "Cultural reference to productivity.",
			Domains: []domain.DomainOption{
				{TLD: ".ai", Available: true, Premium: false},
			},
		},
	}
}
