package persona

import "strings"

// Segment describes a demographic slice used to batch-generate
// personas sharing common traits. Personas keep no back-reference to
// the segment that produced them.
type Segment struct {
	Name                 string   `json:"name" yaml:"name"`
	AgeRange             string   `json:"age_range" yaml:"age_range"`
	IncomeLevel          string   `json:"income_level" yaml:"income_level"`
	Location             string   `json:"location" yaml:"location"`
	Lifestyle            string   `json:"lifestyle" yaml:"lifestyle"`
	TechComfort          string   `json:"tech_comfort" yaml:"tech_comfort"`
	RenovationExperience string   `json:"renovation_experience" yaml:"renovation_experience"`
	KeyMotivations       []string `json:"key_motivations" yaml:"key_motivations"`
	Description          string   `json:"segment_description" yaml:"segment_description"`
	PersonaCount         int      `json:"persona_count,omitempty" yaml:"persona_count,omitempty"`
}

// DefaultPersonaCount is used when a segment does not specify how many
// personas to generate.
const DefaultPersonaCount = 5

// Segments returns the built-in demographic templates for the zero360
// target market.
func Segments() []Segment {
	return []Segment{
		{
			Name:                 "Premium Homeowners",
			AgeRange:             "35-65",
			IncomeLevel:          "High (€80k+)",
			Location:             "Urban/Suburban premium areas",
			Lifestyle:            "Quality-focused, design-conscious",
			TechComfort:          "Medium to High",
			RenovationExperience: "Some to Extensive",
			KeyMotivations:       []string{"Quality", "Status", "Long-term value", "Innovation"},
			Description:          "Affluent homeowners who value premium quality and are willing to invest in high-end solutions. They appreciate craftsmanship, innovation, and products that reflect their status.",
		},
		{
			Name:                 "Growing Families",
			AgeRange:             "28-45",
			IncomeLevel:          "Medium to High (€50k-100k)",
			Location:             "Suburban family neighborhoods",
			Lifestyle:            "Family-focused, practical, busy",
			TechComfort:          "Medium",
			RenovationExperience: "Limited to Some",
			KeyMotivations:       []string{"Functionality", "Safety", "Durability", "Value for money"},
			Description:          "Young to middle-aged families with children who prioritize practical solutions that make daily life easier. They need robust, safe products that can handle family use.",
		},
		{
			Name:                 "Eco-Conscious Millennials",
			AgeRange:             "25-40",
			IncomeLevel:          "Medium (€40k-80k)",
			Location:             "Urban areas, eco-friendly communities",
			Lifestyle:            "Sustainability-focused, tech-savvy",
			TechComfort:          "High",
			RenovationExperience: "DIY-friendly, research-heavy",
			KeyMotivations:       []string{"Sustainability", "Innovation", "Cost savings", "Environmental impact"},
			Description:          "Environmentally conscious millennials who research extensively and prefer sustainable, innovative solutions. They're willing to invest in eco-friendly technology.",
		},
		{
			Name:                 "Commercial Decision Makers",
			AgeRange:             "35-55",
			IncomeLevel:          "Business/Corporate",
			Location:             "Commercial properties, hotels, offices",
			Lifestyle:            "Professional, efficiency-focused",
			TechComfort:          "Medium to High",
			RenovationExperience: "Extensive (professional)",
			KeyMotivations:       []string{"ROI", "Reliability", "Maintenance costs", "Guest satisfaction"},
			Description:          "Professional decision makers in hospitality, real estate, or facilities management who focus on operational efficiency, cost-effectiveness, and customer satisfaction.",
		},
		{
			Name:                 "Active Seniors",
			AgeRange:             "55-75",
			IncomeLevel:          "Medium to High (established wealth)",
			Location:             "Established neighborhoods, retirement communities",
			Lifestyle:            "Comfort-focused, accessibility-aware",
			TechComfort:          "Low to Medium",
			RenovationExperience: "Extensive life experience",
			KeyMotivations:       []string{"Comfort", "Accessibility", "Reliability", "Ease of use"},
			Description:          "Active seniors who are planning for aging in place. They value comfort, accessibility, and reliable products that are easy to use and maintain.",
		},
	}
}

// SegmentByName looks up a built-in segment by name, ignoring case.
func SegmentByName(name string) (Segment, bool) {
	for _, s := range Segments() {
		if strings.EqualFold(strings.TrimSpace(name), s.Name) {
			return s, true
		}
	}
	return Segment{}, false
}
