// Package analytics derives interview metrics from the persona's side
// of a transcript: lexicon sentiment, conviction, concern categories,
// an emotion distribution, and the most frequent content words.
//
// All scoring is pure and deterministic. The input is the ordered list
// of persona reply texts; callers hand transcripts over as plain
// strings so the package stays free of interview types.
package analytics

import (
	"regexp"
	"strings"
)

// Metrics is recomputed from scratch for a transcript, never updated
// incrementally.
type Metrics struct {
	SentimentScore  float64            `json:"sentiment_score"`
	ConvictionLevel float64            `json:"conviction_level"`
	MainConcerns    []string           `json:"main_concerns"`
	Emotions        map[string]float64 `json:"emotions,omitempty"`
	DominantEmotion string             `json:"dominant_emotion,omitempty"`
	Keywords        []string           `json:"keywords,omitempty"`
}

// German interview replies; presence per word, not occurrence count.
var (
	positiveWords = []string{"gut", "toll", "super", "perfekt", "interessant", "hilfreich", "gefällt", "liebe"}
	negativeWords = []string{"schlecht", "problem", "schwierig", "teuer", "kompliziert", "frustrierend"}
)

// convictionThreshold marks a reply as positively convinced.
const convictionThreshold = 0.6

var concernTable = []struct {
	pattern *regexp.Regexp
	label   string
}{
	{regexp.MustCompile(`kosten|preis|budget|teuer`), "💰 Kosten"},
	{regexp.MustCompile(`zeit|dauer|schnell|langsam`), "⏱️ Zeit"},
	{regexp.MustCompile(`sicher|risiko|datenschutz`), "🔒 Sicherheit"},
	{regexp.MustCompile(`komplex|kompliziert|schwierig`), "🧩 Komplexität"},
	{regexp.MustCompile(`integration|kompatibel`), "🔗 Integration"},
	{regexp.MustCompile(`support|hilfe|schulung`), "🆘 Support"},
}

// Scorer computes Metrics. The zero configuration uses the pure German
// lexicon; WithVader blends in a VADER compound score per reply.
type Scorer struct {
	vader vaderScorer
}

// Option configures a Scorer.
type Option func(*Scorer)

// NewScorer builds a Scorer with the given options.
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score computes all metrics over the persona replies in order. An
// empty input yields the neutral defaults (sentiment 0.5, conviction
// 0.0, no concerns) instead of dividing by zero.
func (s *Scorer) Score(replies []string) Metrics {
	m := Metrics{SentimentScore: 0.5}
	if len(replies) == 0 {
		return m
	}

	var sum float64
	var convinced int
	for _, reply := range replies {
		score := s.replySentiment(reply)
		sum += score
		if score > convictionThreshold {
			convinced++
		}
	}
	m.SentimentScore = sum / float64(len(replies))
	m.ConvictionLevel = clamp01(float64(convinced) / float64(len(replies)))
	m.MainConcerns = Concerns(strings.Join(replies, "\n"))
	m.Emotions, m.DominantEmotion = emotionWeights(replies)
	m.Keywords = topKeywords(replies, keywordLimit)
	return m
}

// replySentiment scores one reply in [0,1]. With VADER enabled, the
// lexicon score and the rescaled compound are averaged.
func (s *Scorer) replySentiment(text string) float64 {
	lexicon := SentimentScore(text)
	if s.vader == nil {
		return lexicon
	}
	return (lexicon + s.vader.compound01(text)) / 2
}

// Score computes Metrics with the default lexicon-only Scorer.
func Score(replies []string) Metrics {
	return NewScorer().Score(replies)
}

// SentimentScore rates a single text by lexicon presence: the share of
// matched positive words among all matched words, 0.5 when nothing
// matches. Matching is case-insensitive substring containment, so
// inflections like "gefällt mir gut" hit twice.
func SentimentScore(text string) float64 {
	lower := strings.ToLower(text)
	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0.5
	}
	return float64(pos) / float64(pos+neg)
}

// Concerns extracts concern labels from a text, at most one per
// category, in the fixed table order.
func Concerns(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, c := range concernTable {
		if c.pattern.MatchString(lower) {
			out = append(out, c.label)
		}
	}
	return out
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
