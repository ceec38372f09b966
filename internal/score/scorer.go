// Package score computes journalist truthfulness and speed.
package score

import (
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/JSmilg/veracity/internal/model"
)

// Truthfulness counts confirmed claims
func Truthfulness(claims []model.Claim) decimal.Decimal {
	n := 0
	for _, c := range claims {
		if c.Status == model.StatusConfirmedTrue {
			n++
		}
	}
	return decimal.NewFromInt(int64(n))
}

// Speed turns earliness values into a 0-100 score rounded half-even to two
// decimals. No values score 0.00.
func Speed(earliness []float64) decimal.Decimal {
	if len(earliness) == 0 {
		return decimal.Zero
	}
	var sum float64
	for _, e := range earliness {
		sum += e
	}
	return roundFloat(sum / float64(len(earliness)) * 100)
}

// roundFloat rounds the exact binary value of v, so 2.675 (stored as
// 2.67499...) becomes 2.67
func roundFloat(v float64) decimal.Decimal {
	return decimal.RequireFromString(strconv.FormatFloat(v, 'f', 60, 64)).RoundBank(2)
}

// Percent returns part/total*100 rounded to two decimals, or zero when total is zero
func Percent(part, total int) decimal.Decimal {
	if total == 0 {
		return decimal.Zero
	}
	return roundFloat(float64(part) / float64(total) * 100)
}

// Stats summarises a journalist's claims
func Stats(claims []model.Claim) model.JournalistStats {
	var st model.JournalistStats
	for _, c := range claims {
		st.TotalClaims++
		switch c.Status {
		case model.StatusPending:
			st.PendingClaims++
		case model.StatusConfirmedTrue:
			st.TrueClaims++
		case model.StatusProvenFalse:
			st.FalseClaims++
		case model.StatusPartiallyTrue:
			st.PartiallyTrueClaims++
		}
		if c.SourceType == model.SourceOriginal {
			st.OriginalScoops++
			if c.IsFirstClaim {
				st.FirstToReport++
			}
		}
	}
	st.ValidatedClaims = st.TotalClaims - st.PendingClaims
	st.TruthfulnessScore = decimal.NewFromInt(int64(st.TrueClaims))
	return st
}

// ClubStats ranks journalists by accuracy on claims about one club. Stories
// come from the confirmed club claims; reporters are ranked over allClaims,
// so an earlier report that does not name the club still counts.
func ClubStats(claims, allClaims []model.Claim, journalists map[int64]model.Journalist) []model.ClubJournalistStats {
	earliness := Earliness(Stories(claims), allClaims, ByJournalist)

	byID := make(map[int64]*model.ClubJournalistStats)
	var order []int64
	for _, c := range claims {
		st, ok := byID[c.JournalistID]
		if !ok {
			st = &model.ClubJournalistStats{JournalistID: c.JournalistID, JournalistName: c.JournalistName}
			if j, ok := journalists[c.JournalistID]; ok {
				st.JournalistName = j.Name
				st.Slug = j.Slug
			}
			byID[c.JournalistID] = st
			order = append(order, c.JournalistID)
		}
		st.TotalClaims++
		switch c.Status {
		case model.StatusConfirmedTrue:
			st.TrueClaims++
		case model.StatusProvenFalse:
			st.FalseClaims++
		case model.StatusPending:
			st.PendingClaims++
		}
	}

	out := make([]model.ClubJournalistStats, 0, len(order))
	for _, id := range order {
		st := byID[id]
		st.Accuracy = Percent(st.TrueClaims, st.TotalClaims)
		st.Speed = Speed(earliness[id])
		out = append(out, *st)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if c := out[i].Accuracy.Cmp(out[j].Accuracy); c != 0 {
			return c > 0
		}
		if out[i].TotalClaims != out[j].TotalClaims {
			return out[i].TotalClaims > out[j].TotalClaims
		}
		return strings.ToLower(out[i].JournalistName) < strings.ToLower(out[j].JournalistName)
	})
	return out
}

// PublicationSpeeds scores every publication that shared a story with another
func PublicationSpeeds(claims []model.Claim) map[string]decimal.Decimal {
	earliness := Earliness(Stories(claims), claims, ByPublication)
	out := make(map[string]decimal.Decimal, len(earliness))
	for pub, values := range earliness {
		out[pub] = Speed(values)
	}
	return out
}
