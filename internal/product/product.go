// Package product defines the zero360 product concepts that personas
// are interviewed about, plus the built-in concept catalog.
package product

import (
	"fmt"
	"strings"
)

// Product is a concept under research. Only Name is mandatory; the
// prompt composer substitutes neutral defaults for everything else so
// a sketchy custom product still yields a usable interview.
type Product struct {
	Name         string   `json:"name" yaml:"name"`
	Description  string   `json:"description" yaml:"description"`
	ValueProp    string   `json:"value_prop" yaml:"value_prop"`
	TargetMarket string   `json:"target_market" yaml:"target_market"`
	KeyFeatures  []string `json:"key_features,omitempty" yaml:"key_features,omitempty"`
	Category     string   `json:"category,omitempty" yaml:"category,omitempty"`
	PriceRange   string   `json:"price_range,omitempty" yaml:"price_range,omitempty"`
}

// Validate rejects products that cannot be interviewed about.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("product has no name")
	}
	return nil
}

// Categories lists the product categories offered in the setup wizard.
func Categories() []string {
	return []string{
		"Shower System",
		"Faucet/Tap",
		"Smart Home",
		"Water Management",
		"Accessories",
		"Other",
	}
}

// PriceRanges lists the price brackets offered in the setup wizard.
func PriceRanges() []string {
	return []string{
		"Budget (< 500€)",
		"Mid-range (500-2000€)",
		"Premium (2000-5000€)",
		"Luxury (> 5000€)",
		"Not defined",
	}
}
