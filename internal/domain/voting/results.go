package voting

import (
	"math"
	"sort"
)

// OptionResult is the aggregated outcome for one option
type OptionResult struct {
	Option     PollOption `json:"option"`
	Count      int        `json:"count"`
	Percentage int        `json:"percentage"`
}

// Aggregate computes per-option counts and percentages for a vote set.
// The output preserves the options' ordinal position order. Percentages
// are round(100*count/total); with no votes every option reports zero.
// Pure function: no I/O, inputs are not modified.
func Aggregate(options []PollOption, votes []Vote) []OptionResult {
	counts := make(map[string]int, len(options))
	for i := range votes {
		counts[votes[i].OptionID.String()]++
	}

	ordered := make([]PollOption, len(options))
	copy(ordered, options)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	total := len(votes)
	results := make([]OptionResult, len(ordered))
	for i, opt := range ordered {
		count := counts[opt.ID.String()]
		pct := 0
		if total > 0 {
			pct = int(math.Round(100 * float64(count) / float64(total)))
		}
		results[i] = OptionResult{
			Option:     opt,
			Count:      count,
			Percentage: pct,
		}
	}
	return results
}
