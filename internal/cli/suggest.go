package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zero360/researchlab/internal/interview"
	"github.com/zero360/researchlab/internal/persona"
	"github.com/zero360/researchlab/internal/product"
	"github.com/zero360/researchlab/internal/questions"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest follow-up questions for a persona and product",
	RunE:  runSuggest,
}

var (
	flagSuggestPersona    string
	flagSuggestProduct    string
	flagSuggestTranscript string
)

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringVarP(&flagSuggestPersona, "persona", "P", "", "Example persona the questions should target (name)")
	suggestCmd.Flags().StringVarP(&flagSuggestProduct, "product", "p", "", "Product under research (catalog name or custom)")
	suggestCmd.Flags().StringVarP(&flagSuggestTranscript, "transcript", "f", "", "Path to a conversation JSON file (array of {role, content} turns)")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	var p persona.Persona
	if flagSuggestPersona != "" {
		resolved, err := resolvePersonas(flagSuggestPersona)
		if err != nil {
			return err
		}
		p = resolved[0]
	}

	var prod product.Product
	if flagSuggestProduct != "" {
		found, ok := product.Find(flagSuggestProduct)
		if !ok {
			found = product.Product{Name: flagSuggestProduct}
		}
		prod = found
	}

	var t interview.Transcript
	if flagSuggestTranscript != "" {
		var err error
		t, err = loadTranscript(flagSuggestTranscript)
		if err != nil {
			return err
		}
	}

	for i, q := range questions.Suggest(p, prod, t) {
		fmt.Printf("%d. %s\n", i+1, q)
	}
	return nil
}

// loadTranscript reads a conversation from a JSON array of turns. The
// export bundle's conversation shape works as-is; extra fields such as
// timestamps are ignored.
func loadTranscript(path string) (interview.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	var turns []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, fmt.Errorf("parse transcript %s: %w", path, err)
	}

	var t interview.Transcript
	for _, turn := range turns {
		role := interview.Role(strings.ToLower(turn.Role))
		if role != interview.RoleInterviewer && role != interview.RolePersona {
			return nil, fmt.Errorf("transcript %s: unknown role %q", path, turn.Role)
		}
		t.Add(role, turn.Content)
	}
	return t, nil
}
