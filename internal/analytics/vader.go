package analytics

import "github.com/jonreiter/govader"

// vaderScorer is satisfied by the govader wrapper; keeping it an
// interface lets tests stub the blend without the full VADER lexicon.
type vaderScorer interface {
	compound01(text string) float64
}

type govaderScorer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// compound01 rescales VADER's compound score from [-1,1] to [0,1].
func (g govaderScorer) compound01(text string) float64 {
	compound := g.analyzer.PolarityScores(text).Compound
	return clamp01((compound + 1) / 2)
}

// WithVader blends each reply's lexicon score with VADER's compound
// score by simple averaging. VADER's lexicon is English, so this is
// mostly useful for mixed-language studies; the German lexicon path
// stays the default.
func WithVader() Option {
	return func(s *Scorer) {
		s.vader = govaderScorer{analyzer: govader.NewSentimentIntensityAnalyzer()}
	}
}
