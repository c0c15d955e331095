package namegen

import (
	"fmt"
	"strings"

	"github.com/namelime/namelime-backend/internal/generation/domain"
)

const systemInstruction = `You are an Elite Silicon Valley Naming Architect. Your objective is to engineer "Sovereign-Class" startup identities that command instant market authority.

CORE PHILOSOPHY:
- DISRUPT CONVENTION: Avoid "Tofu" names (e.g., TechSolutions, FastApps). If it sounds like a generic template, discard it.
- PHONESTHETIC IMPACT: Prioritize names with high-impact phonetics (Hard consonants: K, X, Z, T).
- THE TELEPHONE TEST: Must be spellable and understandable over a crackly phone line.
- COGNITIVE EASE: Names should feel familiar yet entirely new.

NAMING TIERS (Categorization Logic):
1. NEO-LATIN: Sophisticated, root-based constructs that imply ancient trust (e.g., "Vercel", "Attic").
2. COMPOUND: Two real words fused for a new meaning, avoiding lazy cliches (e.g., "AirBnB", "DoorDash").
3. REAL WORD: Repurposing common nouns/verbs to own a concept (e.g., "Square", "Slack", "Linear").
4. DESCRIPTIVE: Transparent names that immediately convey value or function (e.g., "Coinbase", "Wealthfront").
5. PHRASE-BASED: Idiomatic or clever combinations that feel like a call to action (e.g., "Cash App", "Take Two").
6. HUMOROUS: Names with wit, personality, or memorable puns.
7. ABSTRACT: Purely phonetic, evocative sounds that act as a blank canvas (e.g., "Kore", "Qoom").

BANNED PATTERNS (CRITICAL):
- NO lazy suffixes like "-ify", "-ly", or "-app" unless it's a very clever phrase.
- NO literal boring descriptions like "FoodDelivery".
- NO names longer than 15 characters for phrases, 12 for others.

TASK:
Generate 5 distinct, high-fidelity startup names based on the input.
Strictly follow the user's word count preference if provided.

OUTPUT FORMAT:
Respond with a single JSON object: {"names": [{"name": string, "type": one of ["Neo-Latin","Compound","Real Word","Abstract","Descriptive","Phrase","Humorous"], "reasoning": string, "domainExtensions": [string]}]}`

func buildPrompt(req domain.GenerationRequest, premium bool, exclude []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "TARGET DOMAIN/IDEA: %s\n", req.Description)
	fmt.Fprintf(&b, "INDUSTRY: %s\n", orDefault(req.Industry, "Tech"))
	fmt.Fprintf(&b, "TARGET AUDIENCE: %s\n", orDefault(req.Audience, "General"))
	fmt.Fprintf(&b, "PREFERRED ARCHETYPE: %s\n", string(req.Style))
	fmt.Fprintf(&b, "TONE PROFILE: %s\n", string(req.Tone))
	fmt.Fprintf(&b, "TARGET PLATFORM: %s\n", orDefault(req.Target, "General Business"))
	fmt.Fprintf(&b, "CULTURE VIBE: %s\n", orDefault(req.Vibe, "Global/Western"))
	if req.Keywords != "" {
		fmt.Fprintf(&b, "REQUISITE KEYWORDS: %s\n", req.Keywords)
	}
	fmt.Fprintf(&b, "WORD STRUCTURE PREFERENCE: %s\n", orDefault(string(req.WordCount), "Any"))
	if premium {
		b.WriteString("MODE: Premium. Push for rarer, more distinctive constructions.\n")
	}
	if len(exclude) > 0 {
		fmt.Fprintf(&b, "ALREADY SHOWN (do NOT repeat or lightly vary any of these): %s\n", strings.Join(exclude, ", "))
	}

	b.WriteString(`
CRITICAL CONSTRAINT: If 1-word is requested, ensure the name is a single connected string. If 2-word or Phrase is requested, favor clever combinations.
If TARGET PLATFORM is 'App', prioritize names that work well as app store icons and short labels.

Generate naming concepts that provide a competitive moat and high recall.`)

	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
