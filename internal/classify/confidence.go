package classify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/JSmilg/veracity/internal/model"
)

// tierPhrases holds the trigger phrases for each certainty tier. Matching is
// a case-insensitive substring test, so any phrase present marks the tier.
var tierPhrases = map[model.CertaintyTier][]string{
	model.TierDoneDeal: {
		"here we go",
		"done deal",
		"deal completed",
		"deal done",
		"transfer completed",
		"transfer confirmed",
		"officially announced",
		"official announcement",
		"has signed",
		"have signed",
		"has completed",
		"have completed",
		"medical completed",
		"passed his medical",
		"passed medical",
		"medical done",
		"contract signed",
		"signed a contract",
		"signed his contract",
		"signed a new",
		"put pen to paper",
		"deal is done",
		"deal agreed and signed",
		"confirmed the signing",
		"confirm the signing",
		"confirmed the transfer",
		"confirm the transfer",
		"completed his move",
		"completed her move",
		"completed the transfer",
		"completed a move",
		"joins on a permanent",
		"officially joins",
		"announced as",
		"unveiled as",
		"agreed a deal",
		"agreed a fee",
		"agreed a move",
		"agreed a transfer",
		"agreed to sign",
		"agreed to sell",
		"agreed to buy",
		"agreed to send",
		"agreed to pay",
		"agreed to loan",
		"deal agreed",
		"jumped at the chance to join",
		"made the move",
	},
	model.TierAdvanced: {
		"close to signing",
		"close to completing",
		"close to agreeing",
		"close to finalising",
		"close to sealing",
		"on the verge of",
		"set to sign",
		"set to complete",
		"set to join",
		"set to leave",
		"expected to sign",
		"expected to complete",
		"expected to join",
		"will sign",
		"will complete",
		"will join",
		"agreed personal terms",
		"personal terms agreed",
		"terms agreed",
		"fee agreed",
		"total agreement",
		"full agreement",
		"agreement reached",
		"agreement in place",
		"medical scheduled",
		"medical booked",
		"set for medical",
		"due to have medical",
		"travelling for medical",
		"undergo a medical",
		"final details",
		"finalising deal",
		"finalising the deal",
		"deal is close",
		"almost done",
		"imminent",
		"all but done",
		"a matter of time",
		"formalities away",
		"decided to make",
		"in pole position",
		"confident of getting",
		"confident they will",
		"confident of resolving",
		"loan move permanent",
		"make the move permanent",
		"made the move permanent",
	},
	model.TierActive: {
		"in negotiations",
		"in talks",
		"in advanced talks",
		"in discussions",
		"negotiating",
		"bid submitted",
		"bid accepted",
		"bid rejected",
		"bid turned down",
		"offer submitted",
		"offer accepted",
		"offer rejected",
		"offer turned down",
		"made a bid",
		"made an offer",
		"made an approach",
		"made contact",
		"tabled a bid",
		"tabled an offer",
		"tabled",
		"submitted a bid",
		"submitted an offer",
		"submitted",
		"formal offer",
		"formal bid",
		"opening bid",
		"set to offer",
		"preparing a bid",
		"preparing an offer",
		"ready to bid",
		"working on a deal",
		"trying to sign",
		"trying to agree",
		"pushing to sign",
		"pushing for a deal",
		"pushing for",
		"progressing",
		"talks ongoing",
		"talks underway",
		"talks have begun",
		"turned down",
		"rejected",
		"knocked back",
		"understand",
		"sources say",
		"approached",
		"enquired",
		"have enquired",
		"given permission",
	},
	model.TierConcreteInterest: {
		"interested in",
		"interested in signing",
		"expressed interest",
		"express interest",
		"shown interest",
		"showing interest",
		"concrete interest",
		"strong interest",
		"genuine interest",
		"serious interest",
		"stepping up interest",
		"stepping up their interest",
		"ramping up",
		"keen on",
		"keen to sign",
		"want to sign",
		"wants to sign",
		"want to bring",
		"wants to bring",
		"target",
		"targeting",
		"have targeted",
		"tracking",
		"scouting",
		"have scouted",
		"monitoring",
		"closely monitoring",
		"watching",
		"keeping tabs",
		"on their radar",
		"on the radar",
		"shortlisted",
		"on the shortlist",
		"identified as a target",
		"have identified",
		"admirers",
		"joined the growing",
		"joined the race",
		"joined the battle",
		"entered the race",
		"enter the race",
		"in the race",
		"in the hunt",
		"leading the race",
		"frontrunners",
		"front-runners",
		"in the market for",
		"set their sights",
		"are hopeful",
		"remain hopeful",
		"priority",
		"prioritising",
		"turned their attention",
	},
	model.TierEarlyIntent: {
		"eyeing",
		"eyeing a move",
		"eyeing up",
		"considering",
		"considering a move",
		"weighing up",
		"lining up",
		"lining up a move",
		"planning a move",
		"could move for",
		"could sign",
		"could make a move",
		"could target",
		"may move for",
		"may sign",
		"may target",
		"might move for",
		"might sign",
		"might target",
		"exploring",
		"exploring a deal",
		"looking at",
		"looking to sign",
		"looking to bring",
		"being looked at",
		"contemplating",
		"assessing",
		"open to signing",
		"open to a move",
		"willing to listen",
		"willing to sell",
		"prepared to sell",
		"prepared to listen",
		"available for",
		"on the market",
		"hoping to",
		"hope to sign",
		"hoping to sign",
		"hoping to strike",
		"want",
	},
	model.TierSpeculation: {
		"linked with",
		"linked to",
		"has been linked",
		"have been linked",
		"rumoured",
		"rumoured to",
		"rumours linking",
		"rumours suggest",
		"touted",
		"touted as",
		"touted for",
		"tipped to",
		"tipped for",
		"could be an option",
		"an option for",
		"a possibility",
		"dream signing",
		"dream target",
		"wish list",
		"wishlist",
		"among the candidates",
		"one of the candidates",
		"in the frame",
		"in the running",
		"believed to",
		"thought to",
		"said to",
		"understood to",
		"reportedly",
		"according to reports",
		"speculation",
	},
}

// tierPatterns covers templated phrasing the phrase table cannot express.
// A tier's patterns are only tried when none of its phrases matched.
var tierPatterns = map[model.CertaintyTier][]*regexp.Regexp{
	model.TierDoneDeal: {
		regexp.MustCompile(`(?i)decided to make.*permanent`),
	},
	model.TierAdvanced: {
		regexp.MustCompile(`(?i)make.*permanent`),
	},
}

func init() {
	for _, phrases := range tierPhrases {
		sort.SliceStable(phrases, func(i, j int) bool {
			return len(phrases[i]) > len(phrases[j])
		})
	}
}

// ClassifyConfidence maps claim text to one of the six certainty tiers.
//
// Every tier whose phrases or patterns occur in the text is collected and the
// least certain of them is returned, so "here we go" next to "linked with"
// yields speculation. Text that matches nothing is speculation too.
func ClassifyConfidence(text string) model.CertaintyTier {
	lower := strings.ToLower(text)

	matched := make(map[model.CertaintyTier]bool)
	for tier, phrases := range tierPhrases {
		for _, phrase := range phrases {
			if strings.Contains(lower, phrase) {
				matched[tier] = true
				break
			}
		}
	}

	for tier, patterns := range tierPatterns {
		if matched[tier] {
			continue
		}
		for _, p := range patterns {
			if p.MatchString(lower) {
				matched[tier] = true
				break
			}
		}
	}

	result := model.TierSpeculation
	best := 0
	for tier := range matched {
		if r := tier.Rank(); r > best {
			best = r
			result = tier
		}
	}
	return result
}

// TierPhrases returns a copy of the phrase table for tier, longest first
func TierPhrases(tier model.CertaintyTier) []string {
	return append([]string(nil), tierPhrases[tier]...)
}
