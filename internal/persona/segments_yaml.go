package persona

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadSegments reads custom demographic segments from a YAML file:
//
//	segments:
//	  - name: Boutique Hoteliers
//	    age_range: 30-55
//	    income_level: Business
//	    key_motivations: [Guest experience, Maintenance]
//	    segment_description: ...
//	    persona_count: 4
//
// Missing persona_count falls back to DefaultPersonaCount.
func LoadSegments(path string) ([]Segment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read segments file: %w", err)
	}

	var doc struct {
		Segments []Segment `yaml:"segments"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse segments file: %w", err)
	}
	if len(doc.Segments) == 0 {
		return nil, fmt.Errorf("no segments defined in %s", path)
	}

	for i := range doc.Segments {
		if doc.Segments[i].Name == "" {
			return nil, fmt.Errorf("segment %d has no name", i+1)
		}
		if doc.Segments[i].PersonaCount <= 0 {
			doc.Segments[i].PersonaCount = DefaultPersonaCount
		}
	}
	return doc.Segments, nil
}
