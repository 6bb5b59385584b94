package outreach

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/spigell/brandmatch/internal/model"
	"github.com/spigell/brandmatch/internal/utils"
)

// DefaultCurrency is the budget currency symbol of the sample catalog.
const DefaultCurrency = "₹"

// fallbackMessage builds the templated message from local fields only.
// It never returns an empty string.
func fallbackMessage(direction model.Direction, requester, counterpart model.Profile, currency string) string {
	if direction == model.InfluencerToBrand {
		greeting := "Hi team!"
		if name := utils.CollapseWhitespace(counterpart.Name); name != "" {
			greeting = fmt.Sprintf("Hi %s team!", name)
		}

		niche := utils.CollapseWhitespace(requester.NicheOrValues)
		if niche == "" {
			niche = "my niche"
		}

		return fmt.Sprintf("%s I create content around %s and my audience (followers: %s) matches your target market. Let's collaborate!",
			greeting, niche, formatFollowers(requester.Followers))
	}

	first := counterpart.FirstName()
	if first == "" {
		first = "there"
	}

	content := "your content"
	if niche := utils.CollapseWhitespace(counterpart.NicheOrValues); niche != "" {
		content = fmt.Sprintf("your %s content", niche)
	}

	collection := "a new collection"
	if product := utils.CollapseWhitespace(requester.Product); product != "" {
		collection = fmt.Sprintf("a new %s collection", product)
	}

	return fmt.Sprintf("Hi %s, we love %s! We're launching %s and think your audience would be perfect. Interested in collaborating? Budget: %s.",
		first, content, collection, formatBudget(requester.Budget, currency))
}

// Idea returns a deterministic collaboration idea for a match.
func Idea(direction model.Direction, requester, counterpart model.Profile) string {
	if direction == model.InfluencerToBrand {
		brand := utils.CollapseWhitespace(counterpart.Name)
		if brand == "" {
			brand = "the brand's"
		}
		return fmt.Sprintf("Create a 'Day in My Life' styling video wearing only %s products, showcasing sustainability in everyday fashion.", brand)
	}

	name := utils.CollapseWhitespace(counterpart.Name)
	if name == "" {
		name = "the creator"
	}

	challenge := "Style Challenge"
	looks := "3 looks"
	if product := utils.CollapseWhitespace(requester.Product); product != "" {
		challenge = product + " Challenge"
		looks = "3 looks with " + product
	}

	return fmt.Sprintf("Host a '%s' where %s styles %s, shares care tips and invites followers to post their own stories.", challenge, name, looks)
}

func formatBudget(budget *int, currency string) string {
	if budget == nil || *budget < 0 {
		return "to be discussed"
	}
	return currency + humanize.Comma(int64(*budget))
}

func formatFollowers(followers *int) string {
	if followers == nil || *followers < 0 {
		return "not disclosed"
	}
	return humanize.Comma(int64(*followers))
}
