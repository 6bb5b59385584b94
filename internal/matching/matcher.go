// Package matching ranks candidate profiles for a requester and pairs the
// shortlist with outreach messages.
package matching

import (
	"sort"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/scoring"
)

// DefaultLimit is the shortlist size.
const DefaultLimit = 3

// ScoringContext carries what the scorers need from the requester side.
type ScoringContext struct {
	Direction model.Direction
	Requester model.Profile
}

// Matcher scores and ranks candidates.
type Matcher struct {
	fit   scoring.FitScorer
	limit int
}

// NewMatcher returns a matcher. bonusTokens boost influencer candidates whose
// niche mentions them; limit <= 0 means DefaultLimit.
func NewMatcher(bonusTokens []string, limit int) *Matcher {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Matcher{
		fit:   scoring.NewFitScorer(bonusTokens),
		limit: limit,
	}
}

func (m *Matcher) Limit() int {
	return m.limit
}

// Rank scores every candidate, orders them by fit and then authenticity, and
// keeps the first Limit entries. Equal keys keep their input order.
func (m *Matcher) Rank(candidates []model.Profile, sc ScoringContext) model.RankedResult {
	scored := make([]model.ScoredMatch, 0, len(candidates))
	for _, candidate := range candidates {
		scored = append(scored, m.score(candidate, sc))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return ranksBefore(scored[i], scored[j])
	})

	if len(scored) > m.limit {
		scored = scored[:m.limit]
	}

	return model.RankedResult{Items: scored}
}

func (m *Matcher) score(candidate model.Profile, sc ScoringContext) model.ScoredMatch {
	match := model.ScoredMatch{Subject: candidate}

	switch sc.Direction {
	case model.InfluencerToBrand:
		// The brand's declared values and audience are looked up in the
		// influencer's own niche.
		attrs := scoring.NewAttributes(candidate.NicheOrValues, candidate.AudienceDescription)
		match.Fit = scoring.FitScorer{}.Score(attrs, sc.Requester.NicheOrValues)
	default:
		attrs := scoring.NewAttributes(sc.Requester.NicheOrValues, sc.Requester.AudienceDescription)
		match.Fit = m.fit.Score(attrs, candidate.NicheOrValues)
	}

	if candidate.HasEngagement() {
		auth := scoring.Authenticity(candidate.FollowerCount(), candidate.EngagementRate(), candidate.RecentGrowth())
		match.Authenticity = &auth
	}

	return match
}

// ranksBefore compares by fit, then by authenticity. A missing authenticity
// sorts below any present one so mixed populations still order consistently.
func ranksBefore(a, b model.ScoredMatch) bool {
	if a.Fit != b.Fit {
		return a.Fit > b.Fit
	}
	return authenticityKey(a) > authenticityKey(b)
}

func authenticityKey(m model.ScoredMatch) int {
	if m.Authenticity == nil {
		return -1
	}
	return *m.Authenticity
}
