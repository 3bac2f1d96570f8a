package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteReport writes the markdown research report: product block,
// summary, sentiment distribution, recommendations, and one detail
// section per interview. Recommendation wording switches on average
// sentiment above 0.6 and average conviction above 0.7.
func WriteReport(w io.Writer, b Bundle) error {
	var sb strings.Builder

	generated := b.ResearchSession.Timestamp
	if t, err := time.Parse(time.RFC3339, generated); err == nil {
		generated = t.Format("2006-01-02 15:04:05")
	}

	name := b.ResearchSession.Product.Name
	if name == "" {
		name = "Unknown"
	}
	desc := b.ResearchSession.Product.Description
	if desc == "" {
		desc = "No description"
	}
	market := b.ResearchSession.Product.TargetMarket
	if market == "" {
		market = "Not specified"
	}

	sum := b.SummaryMetrics

	sb.WriteString("# Autonomous User Research Report\n")
	fmt.Fprintf(&sb, "Generated: %s\n\n", generated)

	sb.WriteString("## Product Tested\n")
	fmt.Fprintf(&sb, "**Name:** %s\n", name)
	fmt.Fprintf(&sb, "**Description:** %s\n", desc)
	fmt.Fprintf(&sb, "**Target Market:** %s\n\n", market)

	sb.WriteString("## Research Summary\n")
	fmt.Fprintf(&sb, "- **Total Interviews:** %d\n", b.ResearchSession.TotalInterviews)
	fmt.Fprintf(&sb, "- **Average Sentiment:** %s\n", percent(sum.AvgSentiment))
	fmt.Fprintf(&sb, "- **Average Purchase Intent:** %s\n\n", percent(sum.AvgConviction))

	sb.WriteString("## Key Findings\n")
	sb.WriteString("### Sentiment Distribution\n")
	fmt.Fprintf(&sb, "- Positive: %d interviews\n", sum.Distribution.Positive)
	fmt.Fprintf(&sb, "- Neutral: %d interviews\n", sum.Distribution.Neutral)
	fmt.Fprintf(&sb, "- Negative: %d interviews\n\n", sum.Distribution.Negative)

	sb.WriteString("### Recommendations\n")
	if sum.AvgSentiment > 0.6 {
		sb.WriteString("1. Leverage positive sentiment in marketing materials\n")
	} else {
		sb.WriteString("1. Address negative feedback before market launch\n")
	}
	if sum.AvgConviction > 0.7 {
		sb.WriteString("2. Focus on conversion optimization\n")
	} else {
		sb.WriteString("2. Strengthen value proposition\n")
	}
	sb.WriteString("3. Consider feedback from diverse persona types\n\n")

	sb.WriteString("## Interview Details\n")
	for _, iv := range b.Interviews {
		fmt.Fprintf(&sb, "\n### %s - %s\n", iv.Persona.Name, iv.Persona.Job)
		fmt.Fprintf(&sb, "- **Sentiment:** %s\n", percent(iv.Metrics.SentimentScore))
		fmt.Fprintf(&sb, "- **Purchase Intent:** %s\n", percent(iv.Metrics.ConvictionLevel))
		concerns := "None"
		if len(iv.Metrics.MainConcerns) > 0 {
			concerns = strings.Join(iv.Metrics.MainConcerns, ", ")
		}
		fmt.Fprintf(&sb, "- **Key Concerns:** %s\n", concerns)
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// percent renders a 0..1 score the way the report reads it, e.g. 0.625
// as "62.5%".
func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}
