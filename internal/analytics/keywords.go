package analytics

import (
	"sort"
	"strings"
	"unicode"
)

const (
	keywordLimit     = 10
	keywordMinLength = 4
)

// stopWords filters function words in both interview languages. Words
// shorter than keywordMinLength never survive tokenization, so only
// longer ones need listing.
var stopWords = map[string]bool{
	// German
	"aber": true, "alle": true, "also": true, "auch": true, "beim": true,
	"dann": true, "dass": true, "dem": true, "denn": true, "diese": true,
	"dieser": true, "dieses": true, "doch": true, "eine": true, "einem": true,
	"einen": true, "einer": true, "eines": true, "haben": true, "hätte": true,
	"ihre": true, "ihrem": true, "ihren": true, "immer": true, "kann": true,
	"können": true, "mich": true, "nach": true, "nicht": true, "noch": true,
	"oder": true, "schon": true, "sehr": true, "sich": true, "sind": true,
	"unser": true, "unsere": true, "viel": true, "vielleicht": true,
	"welche": true, "wenn": true, "werden": true, "wird": true, "wirklich": true,
	"wurde": true, "würde": true, "wäre": true, "über": true,
	// English
	"about": true, "after": true, "been": true, "before": true, "could": true,
	"does": true, "from": true, "have": true, "into": true, "just": true,
	"like": true, "more": true, "most": true, "only": true, "other": true,
	"really": true, "should": true, "some": true, "such": true, "than": true,
	"that": true, "their": true, "them": true, "then": true, "there": true,
	"these": true, "they": true, "this": true, "very": true, "want": true,
	"were": true, "what": true, "when": true, "which": true, "while": true,
	"will": true, "with": true, "would": true, "your": true,
}

// topKeywords returns the most frequent content words across all
// replies: lowercase, split on non-letters, stop words and words
// shorter than four letters dropped. Descending frequency, with ties
// keeping first-seen order.
func topKeywords(replies []string, limit int) []string {
	counts := make(map[string]int)
	var order []string

	for _, reply := range replies {
		tokens := strings.FieldsFunc(strings.ToLower(reply), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, tok := range tokens {
			if len([]rune(tok)) < keywordMinLength || stopWords[tok] {
				continue
			}
			if counts[tok] == 0 {
				order = append(order, tok)
			}
			counts[tok]++
		}
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > limit {
		order = order[:limit]
	}
	return order
}
