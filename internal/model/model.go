package model

import (
	"fmt"
	"strings"
)

// Direction selects which side of the marketplace is looking for partners.
type Direction string

const (
	// BrandToInfluencer ranks influencers for a brand.
	BrandToInfluencer Direction = "brand"
	// InfluencerToBrand ranks brands for an influencer.
	InfluencerToBrand Direction = "influencer"
)

// ParseDirection accepts the role names used by the CLI.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brand", "brand-to-influencer":
		return BrandToInfluencer, nil
	case "influencer", "influencer-to-brand":
		return InfluencerToBrand, nil
	default:
		return "", fmt.Errorf("unknown direction %q: expected brand or influencer", s)
	}
}

func (d Direction) String() string { return string(d) }

// Profile is a snapshot of a brand or an influencer supplied per request.
// Optional numeric fields are nil when unknown.
type Profile struct {
	Name                  string   `json:"name" mapstructure:"name" validate:"required"`
	Handle                string   `json:"handle,omitempty" mapstructure:"handle"`
	Followers             *int     `json:"followers,omitempty" mapstructure:"followers" validate:"omitempty,gte=0"`
	EngagementRatePercent *float64 `json:"engagement_rate,omitempty" mapstructure:"engagement_rate" validate:"omitempty,gte=0,lte=100"`
	RecentGrowthPercent   *float64 `json:"recent_growth,omitempty" mapstructure:"recent_growth" validate:"omitempty,gte=0"`
	NicheOrValues         string   `json:"niche_or_values" mapstructure:"niche_or_values"`
	AudienceDescription   string   `json:"audience,omitempty" mapstructure:"audience"`
	Location              string   `json:"location,omitempty" mapstructure:"location"`
	Budget                *int     `json:"budget,omitempty" mapstructure:"budget" validate:"omitempty,gte=0"`
	Product               string   `json:"product,omitempty" mapstructure:"product"`
	ContentStyle          string   `json:"content_style,omitempty" mapstructure:"content_style"`
}

// HasEngagement reports whether the profile carries engagement data, which
// is what makes it eligible for an authenticity score.
func (p Profile) HasEngagement() bool {
	return p.EngagementRatePercent != nil
}

// FirstName returns the first whitespace separated token of the name.
func (p Profile) FirstName() string {
	fields := strings.Fields(p.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func (p Profile) FollowerCount() int {
	if p.Followers == nil || *p.Followers < 0 {
		return 0
	}
	return *p.Followers
}

func (p Profile) EngagementRate() float64 {
	if p.EngagementRatePercent == nil {
		return 0
	}
	return *p.EngagementRatePercent
}

func (p Profile) RecentGrowth() float64 {
	if p.RecentGrowthPercent == nil {
		return 0
	}
	return *p.RecentGrowthPercent
}

// ScoredMatch is a candidate together with its scores.
// Authenticity is nil for candidates without engagement data.
type ScoredMatch struct {
	Subject      Profile `json:"subject"`
	Authenticity *int    `json:"authenticity_score,omitempty"`
	Fit          int     `json:"fit_score"`
}

// RankedResult is the ordered shortlist produced by the matcher.
type RankedResult struct {
	Items []ScoredMatch `json:"items"`
}

func (r RankedResult) Len() int {
	return len(r.Items)
}

// Names returns the subject names in rank order.
func (r RankedResult) Names() []string {
	names := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		names = append(names, item.Subject.Name)
	}
	return names
}

// Source tells where an outreach message came from.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// OutreachMessage is a collaboration proposal for a single match.
type OutreachMessage struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// IntPtr and FloatPtr help building profiles in code and tests.
func IntPtr(v int) *int { return &v }

func FloatPtr(v float64) *float64 { return &v }
