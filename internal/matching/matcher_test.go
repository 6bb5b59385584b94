package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/scoring"
)

func sampleInfluencers() []model.Profile {
	return []model.Profile{
		{Name: "Isha Sharma", Followers: model.IntPtr(18500), EngagementRatePercent: model.FloatPtr(7.2), RecentGrowthPercent: model.FloatPtr(5), NicheOrValues: "Sustainable Fashion, Eco-Conscious Living"},
		{Name: "Priya Jain", Followers: model.IntPtr(32200), EngagementRatePercent: model.FloatPtr(5.8), RecentGrowthPercent: model.FloatPtr(2), NicheOrValues: "Indian Traditional Wear, Slow Fashion"},
		{Name: "Saanvi Kapoor", Followers: model.IntPtr(11400), EngagementRatePercent: model.FloatPtr(8.3), RecentGrowthPercent: model.FloatPtr(10), NicheOrValues: "Eco-Fashion, Saree Styling, Activism"},
		{Name: "Meera Nair", Followers: model.IntPtr(25300), EngagementRatePercent: model.FloatPtr(6.5), RecentGrowthPercent: model.FloatPtr(8), NicheOrValues: "Sustainable Fashion, Minimalism"},
		{Name: "Ananya Singh", Followers: model.IntPtr(14800), EngagementRatePercent: model.FloatPtr(7.8), RecentGrowthPercent: model.FloatPtr(12), NicheOrValues: "Women Empowerment, Eco-Products"},
	}
}

func sampleBrands() []model.Profile {
	return []model.Profile{
		{Name: "SundarEarth", NicheOrValues: "Sustainability, Eco-Friendly", AudienceDescription: "Women 20-35", Product: "Organic Sarees", Budget: model.IntPtr(25000)},
		{Name: "PureWeave Naturals", NicheOrValues: "Slow Fashion, Women Empowerment", AudienceDescription: "Millennials", Product: "Handloom Cotton", Budget: model.IntPtr(20000)},
		{Name: "VastraVeda", NicheOrValues: "Natural Fabrics, Fair Trade", AudienceDescription: "Corporate Women", Product: "Office Wear", Budget: model.IntPtr(30000)},
		{Name: "EcoThreads", NicheOrValues: "Sustainability, Minimalism", AudienceDescription: "Young Professionals", Product: "Casual Wear", Budget: model.IntPtr(22000)},
	}
}

func sampleBrand() model.Profile {
	return model.Profile{
		Name:                "GreenEarth Eco Fashion",
		NicheOrValues:       "Sustainability, Women Empowerment, Ethical Manufacturing",
		AudienceDescription: "Women aged 20-35, eco-conscious, Tier 1/2 cities",
		Product:             "Eco-Friendly Sarees",
		Budget:              model.IntPtr(25000),
	}
}

func TestRankBrandToInfluencer(t *testing.T) {
	m := NewMatcher(scoring.DefaultBonusTokens, 0)

	ranked := m.Rank(sampleInfluencers(), ScoringContext{Direction: model.BrandToInfluencer, Requester: sampleBrand()})

	require.Equal(t, 3, ranked.Len())
	assert.Equal(t, []string{"Ananya Singh", "Isha Sharma", "Saanvi Kapoor"}, ranked.Names())

	assert.Equal(t, 80, ranked.Items[0].Fit)
	assert.Equal(t, 60, ranked.Items[1].Fit)
	assert.Equal(t, 60, ranked.Items[2].Fit)

	for _, item := range ranked.Items {
		require.NotNil(t, item.Authenticity, "influencer candidates carry authenticity")
		assert.Equal(t, 100, *item.Authenticity)
	}
}

func TestRankInfluencerToBrand(t *testing.T) {
	m := NewMatcher(scoring.DefaultBonusTokens, 0)
	requester := model.Profile{
		Name:                  "Riya Eco",
		NicheOrValues:         "Slow Fashion, Minimalism, Saree drapes",
		Followers:             model.IntPtr(15000),
		EngagementRatePercent: model.FloatPtr(7.5),
		RecentGrowthPercent:   model.FloatPtr(8),
	}

	ranked := m.Rank(sampleBrands(), ScoringContext{Direction: model.InfluencerToBrand, Requester: requester})

	require.Equal(t, 3, ranked.Len())
	assert.Equal(t, []string{"PureWeave Naturals", "EcoThreads", "SundarEarth"}, ranked.Names())
	assert.Equal(t, []int{80, 80, 50}, fits(ranked))

	for _, item := range ranked.Items {
		assert.Nil(t, item.Authenticity, "brand candidates have no engagement data")
	}
}

func TestRankInfluencerToBrandIgnoresBonusTokens(t *testing.T) {
	m := NewMatcher([]string{"saree"}, 0)
	requester := model.Profile{Name: "Riya", NicheOrValues: "Saree Styling"}

	ranked := m.Rank(sampleBrands()[:1], ScoringContext{Direction: model.InfluencerToBrand, Requester: requester})

	require.Equal(t, 1, ranked.Len())
	assert.Equal(t, 50, ranked.Items[0].Fit)
}

func TestRankEndToEndScenario(t *testing.T) {
	m := NewMatcher(scoring.DefaultBonusTokens, 0)
	requester := model.Profile{
		Name:                "GreenEarth",
		NicheOrValues:       "Sustainability, Women Empowerment",
		AudienceDescription: "Women aged 20-35",
		Budget:              model.IntPtr(25000),
	}
	candidate := model.Profile{
		Name:                  "Saanvi Kapoor",
		NicheOrValues:         "Eco-Fashion, Saree Styling, Activism",
		EngagementRatePercent: model.FloatPtr(8.3),
		RecentGrowthPercent:   model.FloatPtr(10.0),
	}
	spiked := model.Profile{
		Name:                  "Spiky",
		NicheOrValues:         "Eco-Fashion, Saree Styling, Activism",
		EngagementRatePercent: model.FloatPtr(5.0),
		RecentGrowthPercent:   model.FloatPtr(45),
	}

	ranked := m.Rank([]model.Profile{spiked, candidate}, ScoringContext{Direction: model.BrandToInfluencer, Requester: requester})

	require.Equal(t, 2, ranked.Len())
	assert.Equal(t, []string{"Saanvi Kapoor", "Spiky"}, ranked.Names())
	assert.Equal(t, 60, ranked.Items[0].Fit)
	assert.Equal(t, 100, *ranked.Items[0].Authenticity)
	assert.Equal(t, 80, *ranked.Items[1].Authenticity)
}

func TestRankIsStableOnTies(t *testing.T) {
	m := NewMatcher(nil, 10)
	candidates := make([]model.Profile, 0, 6)
	for _, name := range []string{"first", "second", "third", "fourth", "fifth", "sixth"} {
		candidates = append(candidates, model.Profile{
			Name:                  name,
			NicheOrValues:         "Travel",
			EngagementRatePercent: model.FloatPtr(4),
			RecentGrowthPercent:   model.FloatPtr(1),
		})
	}

	for range 20 {
		ranked := m.Rank(candidates, ScoringContext{Direction: model.BrandToInfluencer, Requester: sampleBrand()})
		assert.Equal(t, []string{"first", "second", "third", "fourth", "fifth", "sixth"}, ranked.Names())
	}
}

func TestRankSmallPopulations(t *testing.T) {
	m := NewMatcher(nil, 0)
	sc := ScoringContext{Direction: model.BrandToInfluencer, Requester: sampleBrand()}

	empty := m.Rank(nil, sc)
	assert.Equal(t, 0, empty.Len())
	assert.NotNil(t, empty.Items)

	for n := 1; n <= 2; n++ {
		ranked := m.Rank(sampleInfluencers()[:n], sc)
		assert.Equal(t, n, ranked.Len(), "result must not be padded")
	}
}

func TestRankDoesNotMutateInput(t *testing.T) {
	m := NewMatcher(scoring.DefaultBonusTokens, 0)
	candidates := sampleInfluencers()
	before := names(candidates)

	m.Rank(candidates, ScoringContext{Direction: model.BrandToInfluencer, Requester: sampleBrand()})

	assert.Equal(t, before, names(candidates))
}

func TestRankMixedPopulation(t *testing.T) {
	m := NewMatcher(nil, 0)
	candidates := []model.Profile{
		{Name: "no-data", NicheOrValues: "Travel"},
		{Name: "low", NicheOrValues: "Travel", EngagementRatePercent: model.FloatPtr(0), RecentGrowthPercent: model.FloatPtr(50)},
		{Name: "high", NicheOrValues: "Travel", EngagementRatePercent: model.FloatPtr(9)},
	}

	ranked := m.Rank(candidates, ScoringContext{Direction: model.BrandToInfluencer, Requester: sampleBrand()})

	assert.Equal(t, []string{"high", "low", "no-data"}, ranked.Names())
}

func TestParseDirection(t *testing.T) {
	d, err := model.ParseDirection(" Brand ")
	require.NoError(t, err)
	assert.Equal(t, model.BrandToInfluencer, d)

	d, err = model.ParseDirection("influencer")
	require.NoError(t, err)
	assert.Equal(t, model.InfluencerToBrand, d)

	_, err = model.ParseDirection("agency")
	assert.Error(t, err)
}

func fits(r model.RankedResult) []int {
	out := make([]int, 0, r.Len())
	for _, item := range r.Items {
		out = append(out, item.Fit)
	}
	return out
}

func names(profiles []model.Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.Name)
	}
	return out
}
