package scoring

import "strings"

const (
	fitMatchedBase   = 80
	fitUnmatchedBase = 50
	fitAudienceBonus = 10
	fitTokenBonus    = 10
)

// DefaultBonusTokens boosts counterparts whose niche mentions the product
// category of the sample catalog.
var DefaultBonusTokens = []string{"saree"}

// Attributes are the two token groups compared against a niche text.
type Attributes struct {
	Values   []string
	Audience []string
}

// NewAttributes splits comma separated values and audience descriptions.
func NewAttributes(values, audience string) Attributes {
	return Attributes{
		Values:   SplitAttributes(values),
		Audience: SplitAttributes(audience),
	}
}

// SplitAttributes splits a comma separated field into lowercased, trimmed
// tokens. Tokens that are empty after trimming are dropped, so ", ," never
// matches anything.
func SplitAttributes(s string) []string {
	parts := strings.Split(s, ",")
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.ToLower(strings.TrimSpace(part))
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// FitScorer scores textual overlap between declared attributes and a
// counterpart's niche description.
type FitScorer struct {
	// BonusTokens add a single fixed increment when any of them appears in
	// the counterpart text. Nil disables the bonus.
	BonusTokens []string
}

// NewFitScorer returns a scorer with the provided bonus tokens. Tokens are
// normalized the same way as attributes.
func NewFitScorer(bonusTokens []string) FitScorer {
	normalized := make([]string, 0, len(bonusTokens))
	for _, token := range bonusTokens {
		normalized = append(normalized, SplitAttributes(token)...)
	}
	return FitScorer{BonusTokens: normalized}
}

// Score returns 80 when any value token is contained in text (50 otherwise),
// plus 10 for any audience token and 10 for any bonus token, capped at 100.
func (f FitScorer) Score(attrs Attributes, text string) int {
	text = strings.ToLower(text)

	score := fitUnmatchedBase
	if containsAny(text, attrs.Values) {
		score = fitMatchedBase
	}
	if containsAny(text, attrs.Audience) {
		score += fitAudienceBonus
	}
	if containsAny(text, f.BonusTokens) {
		score += fitTokenBonus
	}

	return min(score, maxScore)
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			continue
		}
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
