package domain

import (
	"errors"
	"fmt"
	"strings"
)

type NamingStyle string

const (
	StyleNeoLatin    NamingStyle = "Neo-Latin"
	StyleCompound    NamingStyle = "Compound"
	StyleRealWord    NamingStyle = "Real Word"
	StyleAbstract    NamingStyle = "Abstract"
	StyleDescriptive NamingStyle = "Descriptive"
	StylePhrase      NamingStyle = "Phrase"
	StyleHumorous    NamingStyle = "Humorous"
)

type Tone string

const (
	TonePremium    Tone = "Premium"
	ToneFun        Tone = "Fun"
	ToneModern     Tone = "Modern"
	ToneBold       Tone = "Bold"
	ToneMinimalist Tone = "Minimalist"
	ToneTech       Tone = "Tech"
	ToneLuxury     Tone = "Luxury"
)

type WordCountPreference string

const (
	OneWord  WordCountPreference = "1-word"
	TwoWord  WordCountPreference = "2-word"
	AnyWords WordCountPreference = "both"
)

// GenerationRequest is one user-submitted naming brief. Immutable once
// submitted; one request produces exactly one orchestration run.
type GenerationRequest struct {
	Description string              `json:"description" binding:"required"`
	Keywords    string              `json:"keywords,omitempty"`
	Style       NamingStyle         `json:"style,omitempty"`
	Tone        Tone                `json:"tone,omitempty"`
	Industry    string              `json:"industry,omitempty"`
	Audience    string              `json:"audience,omitempty"`
	Target      string              `json:"target,omitempty"`
	Vibe        string              `json:"vibe,omitempty"`
	WordCount   WordCountPreference `json:"wordCount,omitempty"`
}

// Validate enforces the preconditions checked before orchestration begins.
func (r *GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ErrEmptyDescription
	}
	return nil
}

// DomainOption is one advisory domain-extension availability record.
// Flags are simulated, not authoritative.
type DomainOption struct {
	TLD       string `json:"tld"`
	Available bool   `json:"available"`
	Premium   bool   `json:"premium"`
}

// GeneratedName is one candidate produced by the generator. Once accepted
// it is persisted verbatim into a history record.
type GeneratedName struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Archetype NamingStyle    `json:"archetype"`
	Reasoning string         `json:"reasoning"`
	Domains   []DomainOption `json:"domains"`
}

// PersistenceStatus reports the outcome of the best-effort writes that
// follow a delivered result. Failures here never affect the result itself;
// they are surfaced so a harness can assert on them instead of inferring
// from log lines.
type PersistenceStatus struct {
	HistorySaved bool   `json:"historySaved"`
	StatsSaved   bool   `json:"statsSaved"`
	HistoryError string `json:"historyError,omitempty"`
	StatsError   string `json:"statsError,omitempty"`
}

var (
	ErrEmptyDescription = errors.New("description must not be empty")

	// ErrGenerationFailed is fatal to the run: the result set is empty and
	// no quota is consumed.
	ErrGenerationFailed = errors.New("name generation failed")
)

// QuotaExceededError is the recoverable, user-facing policy violation
// raised before any network call is made. It carries enough for the caller
// to render a message and offer an upgrade action.
type QuotaExceededError struct {
	Limit         int
	UpgradeAction string
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit reached: free users can generate %d times per day", e.Limit)
}

// IsQuotaExceeded reports whether err is the quota policy violation.
func IsQuotaExceeded(err error) bool {
	var qe *QuotaExceededError
	return errors.As(err, &qe)
}
