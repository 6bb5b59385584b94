// Package scoring holds the heuristic scores used to rank brand and
// influencer matches. All functions are total: any numeric input produces a
// score in [0,100].
package scoring

import "math"

const (
	// SpikeThresholdPercent is the recent follower growth above which the
	// growth is treated as inorganic.
	SpikeThresholdPercent = 30.0

	authenticityBase   = 50.0
	engagementCeiling  = 50.0
	engagementScale    = 10.0
	organicGrowthScore = 35.0
	spikeGrowthScore   = 5.0

	minScore = 0
	maxScore = 100
)

// Authenticity estimates how genuine an influencer's audience is from the
// engagement rate and the recent follower growth.
//
// followers does not influence the result. It is part of the signature so
// that callers pass the full engagement picture and the heuristic can grow
// into it without an API change.
func Authenticity(followers int, engagementRatePercent, recentGrowthPercent float64) int {
	_ = followers

	engagement := sanitizeRate(engagementRatePercent) / engagementScale * engagementCeiling
	engagement = math.Min(engagement, engagementCeiling)

	growth := organicGrowthScore
	if IsSpike(recentGrowthPercent) {
		growth = spikeGrowthScore
	}

	return clamp(authenticityBase + engagement + growth)
}

// IsSpike reports whether the recent growth looks like bought or bot followers.
func IsSpike(recentGrowthPercent float64) bool {
	return sanitizeRate(recentGrowthPercent) > SpikeThresholdPercent
}

func sanitizeRate(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}

// clamp bounds raw into [0,100] and truncates toward zero.
func clamp(raw float64) int {
	if math.IsNaN(raw) {
		return minScore
	}
	raw = math.Max(minScore, math.Min(maxScore, raw))
	return int(raw)
}
