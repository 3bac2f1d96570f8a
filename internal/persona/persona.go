// Package persona defines the simulated interviewees that condition the
// dialogue engine: hand-authored archetypes, demographic segments, and
// AI-generated records sharing one schema.
package persona

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind discriminates between a single interviewee and a two-person
// household that answers as a couple ("wir" instead of "ich").
type Kind string

const (
	Individual Kind = "individual"
	Household  Kind = "household"
)

// Archetype identifies one of the hand-authored interview archetypes.
// It is resolved once when a persona is created so downstream consumers
// (question tables, demo responses) never re-derive it from the name.
type Archetype string

const (
	ArchetypeNone             Archetype = ""
	ArchetypeLuxusBauherr     Archetype = "luxus-bauherr"
	ArchetypeArchitektin      Archetype = "architektin"
	ArchetypeInstallateur     Archetype = "installateur"
	ArchetypeModernisiererin  Archetype = "modernisiererin"
	ArchetypeRentner          Archetype = "rentner"
	ArchetypeFamilienpaar     Archetype = "familienpaar"
	ArchetypeBerufseinsteiger Archetype = "berufseinsteiger"
)

// Persona is a structured, simulated-customer record. All narrative
// fields are single strings by contract; list-shaped model output is
// joined with "; " at the parse boundary (see Normalize). Missing
// fields fall back to documented defaults at prompt-rendering time,
// so a zero Persona is always renderable.
type Persona struct {
	Name        string `json:"name"`
	Age         int    `json:"age"`
	Job         string `json:"job"`
	Company     string `json:"company"`
	Experience  string `json:"experience"`
	PainPoints  string `json:"pain_points"`
	Goals       string `json:"goals"`
	Personality string `json:"personality"`

	// Kind and Archetype are derived once at creation, never per call.
	Kind      Kind      `json:"kind,omitempty"`
	Archetype Archetype `json:"archetype,omitempty"`
	// Members holds the first names of a household couple, in the
	// order they appear in Name. Empty for individuals.
	Members []string `json:"members,omitempty"`
}

// Resolved returns a copy with Kind, Members, and Archetype filled in
// when the caller left them empty. Creation paths (examples, form
// input, AI generation) call this exactly once.
func (p Persona) Resolved() Persona {
	if p.Kind == "" {
		p.Kind, p.Members = DetectKind(p.Name)
	}
	if p.Archetype == "" {
		p.Archetype = DetectArchetype(p.Name)
	}
	return p
}

// DetectKind classifies a name as a two-person household when it is
// two capitalized given names joined by "&" (the second may carry a
// shared family name, as in "Sandra & Marco Keller"). Anything else,
// including company-style names with ampersands deeper in the string,
// stays Individual.
func DetectKind(name string) (Kind, []string) {
	parts := strings.Split(name, "&")
	if len(parts) != 2 {
		return Individual, nil
	}
	first := strings.TrimSpace(parts[0])
	second := strings.TrimSpace(parts[1])
	secondFields := strings.Fields(second)
	// The right side is at most a given name plus a shared family name;
	// longer runs are company names, not couples.
	if !isGivenName(first) || len(secondFields) == 0 || len(secondFields) > 2 || !startsUpper(second) {
		return Individual, nil
	}
	return Household, []string{first, secondFields[0]}
}

// isGivenName reports whether s looks like a single capitalized first
// name ("Sandra", "Anna"), not a multi-word company fragment.
func isGivenName(s string) bool {
	return len(strings.Fields(s)) == 1 && startsUpper(s)
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

// DetectArchetype maps the hand-authored example names onto their
// archetype. Custom and generated personas resolve to ArchetypeNone
// and receive the generic question and demo-response tables.
func DetectArchetype(name string) Archetype {
	switch {
	case strings.Contains(name, "Thomas Richter"):
		return ArchetypeLuxusBauherr
	case strings.Contains(name, "Julia Schneider"):
		return ArchetypeArchitektin
	case strings.Contains(name, "Michael Wagner"):
		return ArchetypeInstallateur
	case strings.Contains(name, "Anna Bergmann"):
		return ArchetypeModernisiererin
	case strings.Contains(name, "Werner Hoffmann"):
		return ArchetypeRentner
	case strings.Contains(name, "Sandra & Marco"):
		return ArchetypeFamilienpaar
	case strings.Contains(name, "Lukas Bauer"):
		return ArchetypeBerufseinsteiger
	}
	return ArchetypeNone
}

// narrative tolerates the model returning a JSON array where the
// schema asks for a paragraph; list values are joined with "; ".
type narrative string

func (n *narrative) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*n = narrative(s)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*n = narrative(strings.Join(list, "; "))
		return nil
	}
	return fmt.Errorf("expected string or string array, got %s", string(data))
}

// flexibleAge tolerates the model quoting the age ("52" vs 52).
type flexibleAge int

func (a *flexibleAge) UnmarshalJSON(data []byte) error {
	var i int
	if err := json.Unmarshal(data, &i); err == nil {
		*a = flexibleAge(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, convErr := strconv.Atoi(strings.TrimSpace(s))
		if convErr != nil {
			return fmt.Errorf("age %q is not numeric", s)
		}
		*a = flexibleAge(parsed)
		return nil
	}
	return fmt.Errorf("expected number or numeric string, got %s", string(data))
}

// Parse decodes a generated persona JSON object, normalizing
// list-shaped narrative fields and resolving Kind and Archetype. This
// is the single validation point for model output.
func Parse(data []byte) (Persona, error) {
	var raw struct {
		Name        string      `json:"name"`
		Age         flexibleAge `json:"age"`
		Job         string      `json:"job"`
		Company     string      `json:"company"`
		Experience  narrative   `json:"experience"`
		PainPoints  narrative   `json:"pain_points"`
		Goals       narrative   `json:"goals"`
		Personality narrative   `json:"personality"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return Persona{}, fmt.Errorf("parse persona JSON: %w", err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return Persona{}, fmt.Errorf("generated persona has no name")
	}
	p := Persona{
		Name:        strings.TrimSpace(raw.Name),
		Age:         int(raw.Age),
		Job:         raw.Job,
		Company:     raw.Company,
		Experience:  string(raw.Experience),
		PainPoints:  string(raw.PainPoints),
		Goals:       string(raw.Goals),
		Personality: string(raw.Personality),
	}
	return p.Resolved(), nil
}
