package analytics

import "strings"

// emotionOrder fixes both map iteration for tie-breaks and the report
// layout. Categories follow the usual basic-emotion set.
var emotionOrder = []string{"joy", "trust", "fear", "anger", "surprise", "sadness"}

// Bilingual keyword lexicons; matching mirrors the sentiment scorer
// (case-insensitive substring presence per keyword).
var emotionLexicon = map[string][]string{
	"joy": {
		"freude", "freut", "glücklich", "begeistert", "begeisterung", "spaß",
		"happy", "excited", "great", "wonderful",
	},
	"trust": {
		"vertrauen", "vertraue", "zuverlässig", "bewährt", "qualität", "überzeugt",
		"trust", "reliable", "dependable", "proven",
	},
	"fear": {
		"angst", "sorge", "sorgen", "befürchte", "risiko", "unsicher",
		"afraid", "worried", "worry", "risky",
	},
	"anger": {
		"ärgert", "ärgerlich", "frustrierend", "frustriert", "nervt", "wütend",
		"angry", "annoying", "frustrating", "unacceptable",
	},
	"surprise": {
		"überrascht", "überraschend", "erstaunlich", "unerwartet", "verblüfft",
		"surprised", "surprising", "amazing", "unexpected", "wow",
	},
	"sadness": {
		"schade", "traurig", "enttäuscht", "enttäuschend", "bedauerlich",
		"sad", "disappointed", "disappointing", "unfortunately",
	},
}

// emotionWeights accumulates lexicon hits per category over all
// replies, then normalizes by the total hit count so the weights sum
// to 1 (or returns nothing at all when no keyword matched). The
// dominant emotion is the highest weight; ties go to the earlier
// category in emotionOrder.
func emotionWeights(replies []string) (map[string]float64, string) {
	hits := make(map[string]int, len(emotionOrder))
	total := 0

	for _, reply := range replies {
		lower := strings.ToLower(reply)
		for _, category := range emotionOrder {
			for _, keyword := range emotionLexicon[category] {
				if strings.Contains(lower, keyword) {
					hits[category]++
					total++
				}
			}
		}
	}
	if total == 0 {
		return nil, ""
	}

	weights := make(map[string]float64, len(hits))
	dominant := ""
	best := 0.0
	for _, category := range emotionOrder {
		if hits[category] == 0 {
			continue
		}
		w := float64(hits[category]) / float64(total)
		weights[category] = w
		if w > best {
			best = w
			dominant = category
		}
	}
	return weights, dominant
}
