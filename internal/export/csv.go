package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// summaryHeader is the column layout shared with the team's analysis
// spreadsheets; renaming a column breaks their imports.
var summaryHeader = []string{
	"Interview_ID",
	"Persona_Name",
	"Persona_Job",
	"Persona_Age",
	"Sentiment_Score",
	"Conviction_Level",
	"Concerns_Count",
	"Main_Concerns",
}

// WriteSummaryCSV writes one row per interview with the persona and
// its scores. Concerns are joined with "; " into a single cell.
func WriteSummaryCSV(w io.Writer, b Bundle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for _, iv := range b.Interviews {
		row := []string{
			iv.ID,
			iv.Persona.Name,
			iv.Persona.Job,
			strconv.Itoa(iv.Persona.Age),
			formatScore(iv.Metrics.SentimentScore),
			formatScore(iv.Metrics.ConvictionLevel),
			strconv.Itoa(len(iv.Metrics.MainConcerns)),
			strings.Join(iv.Metrics.MainConcerns, "; "),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTranscriptCSV writes one interview's conversation as a
// three-column table.
func WriteTranscriptCSV(w io.Writer, conversation []Message) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Timestamp", "Role", "Message"}); err != nil {
		return fmt.Errorf("write transcript header: %w", err)
	}
	for _, msg := range conversation {
		if err := cw.Write([]string{msg.Timestamp, msg.Role, msg.Content}); err != nil {
			return fmt.Errorf("write transcript row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
