package outreach

import (
	"strings"

	_ "embed"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/utils"
)

//go:embed brand_prompt.md
var brandPromptTemplate string

//go:embed influencer_prompt.md
var influencerPromptTemplate string

const missingValue = "not specified"

// buildPrompt renders the direction specific prompt. Every embedded value is
// collapsed to a single line.
func buildPrompt(direction model.Direction, requester, counterpart model.Profile, currency string) string {
	template := brandPromptTemplate
	if direction == model.InfluencerToBrand {
		template = influencerPromptTemplate
	}

	replacer := strings.NewReplacer(
		"{{REQUESTER_NAME}}", promptValue(requester.Name),
		"{{REQUESTER_VALUES}}", promptValue(requester.NicheOrValues),
		"{{REQUESTER_NICHE}}", promptValue(requester.NicheOrValues),
		"{{REQUESTER_PRODUCT}}", promptValue(requester.Product),
		"{{COUNTERPART_NAME}}", promptValue(counterpart.Name),
		"{{COUNTERPART_NICHE}}", promptValue(counterpart.NicheOrValues),
		"{{BUDGET}}", formatBudget(requester.Budget, currency),
		"{{FOLLOWERS}}", formatFollowers(requester.Followers),
	)

	return strings.TrimSpace(replacer.Replace(template))
}

func promptValue(s string) string {
	s = utils.CollapseWhitespace(s)
	if s == "" {
		return missingValue
	}
	return s
}
