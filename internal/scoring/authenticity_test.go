package scoring

import (
	"math"
	"testing"
)

func TestAuthenticity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		followers  int
		engagement float64
		growth     float64
		expect     int
	}{
		{name: "high engagement organic growth is capped", followers: 11400, engagement: 8.3, growth: 10, expect: 100},
		{name: "spike is penalized", followers: 20000, engagement: 5.0, growth: 45, expect: 80},
		{name: "no engagement organic growth", followers: 0, engagement: 0, growth: 0, expect: 85},
		{name: "no engagement with spike", followers: 0, engagement: 0, growth: 31, expect: 55},
		{name: "growth at threshold is organic", followers: 100, engagement: 2, growth: 30, expect: 95},
		{name: "engagement component saturates", followers: 100, engagement: 60, growth: 90, expect: 100},
		{name: "fractional score truncates", followers: 100, engagement: 1.23, growth: 50, expect: 61},
		{name: "negative inputs are clamped", followers: -5, engagement: -20, growth: -3, expect: 85},
		{name: "nan engagement counts as zero", followers: 1, engagement: math.NaN(), growth: 0, expect: 85},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Authenticity(tt.followers, tt.engagement, tt.growth); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestAuthenticityStaysInRange(t *testing.T) {
	t.Parallel()

	rates := []float64{0, 0.1, 1, 5, 9.99, 10, 10.01, 25, 100, 1e6, math.Inf(1)}
	growths := []float64{0, 5, 29.9, 30, 30.1, 200, math.Inf(1)}

	for _, rate := range rates {
		for _, growth := range growths {
			got := Authenticity(1000, rate, growth)
			if got < 0 || got > 100 {
				t.Fatalf("score %d out of range for rate=%v growth=%v", got, rate, growth)
			}
		}
	}
}

func TestAuthenticitySpikeNeverRaisesScore(t *testing.T) {
	t.Parallel()

	for _, followers := range []int{0, 1000, 18500, 1_000_000} {
		organic := Authenticity(followers, 10.0, 0.0)
		spiked := Authenticity(followers, 10.0, 40.0)
		if spiked > organic {
			t.Fatalf("spike raised the score for %d followers: %d > %d", followers, spiked, organic)
		}
	}
}

func TestAuthenticityIgnoresFollowers(t *testing.T) {
	t.Parallel()

	if Authenticity(10, 4.2, 12) != Authenticity(10_000_000, 4.2, 12) {
		t.Fatal("expected followers to have no effect on the score")
	}
}
