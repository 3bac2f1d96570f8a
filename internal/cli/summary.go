package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/zero360/researchlab/internal/research"
)

var (
	summaryTitle = color.New(color.FgCyan, color.Bold)
	positiveText = color.New(color.FgGreen)
	neutralText  = color.New(color.FgYellow)
	negativeText = color.New(color.FgRed)
)

// renderSummary prints the study outcome once the progress bar is
// gone: averages, sentiment distribution, top concerns, and one line
// per interview colored by how the conversation went.
func renderSummary(w io.Writer, st research.Study) {
	completed := st.CompletedInterviews()
	if len(completed) == 0 {
		return
	}

	summaryTitle.Fprintf(w, "\nResearch summary: %s\n", st.Product.Name)
	fmt.Fprintf(w, "  Interviews:      %d\n", len(completed))
	fmt.Fprintf(w, "  Avg sentiment:   %.1f%%\n", st.Summary.AvgSentiment*100)
	fmt.Fprintf(w, "  Purchase intent: %.1f%%\n", st.Summary.AvgConviction*100)

	d := st.Summary.Distribution
	fmt.Fprintf(w, "  Mood:            %s / %s / %s\n",
		positiveText.Sprintf("%d positive", d.Positive),
		neutralText.Sprintf("%d neutral", d.Neutral),
		negativeText.Sprintf("%d negative", d.Negative))

	if concerns := topConcerns(completed); len(concerns) > 0 {
		fmt.Fprintf(w, "  Top concerns:    %s\n", strings.Join(concerns, ", "))
	}

	fmt.Fprintln(w)
	for _, iv := range completed {
		line := fmt.Sprintf("  %s (%d, %s): sentiment %.0f%%, intent %.0f%%\n",
			iv.Persona.Name, iv.Persona.Age, iv.Persona.Job,
			iv.Metrics.SentimentScore*100, iv.Metrics.ConvictionLevel*100)
		sentimentColor(iv.Metrics.SentimentScore).Fprint(w, line)
	}
	fmt.Fprintln(w)
}

// sentimentColor buckets a score with the same thresholds the summary
// distribution uses.
func sentimentColor(score float64) *color.Color {
	switch {
	case score > 0.6:
		return positiveText
	case score < 0.4:
		return negativeText
	default:
		return neutralText
	}
}

// topConcerns ranks concern labels by how many interviews raised
// them, keeping at most the three most common. Ties keep the order
// the concerns first appeared in.
func topConcerns(interviews []research.Interview) []string {
	counts := map[string]int{}
	var order []string
	for _, iv := range interviews {
		for _, c := range iv.Metrics.MainConcerns {
			if counts[c] == 0 {
				order = append(order, c)
			}
			counts[c]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > 3 {
		order = order[:3]
	}
	return order
}
