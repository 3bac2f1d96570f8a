package product

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// LoadCatalog reads a custom product catalog from a YAML file:
//
//	products:
//	  - name: zero360 SmartFlow Pro
//	    description: ...
//	    value_prop: ...
//	    target_market: Premium homeowners, Hotels
//	    key_features: [Feature 1, Feature 2]
//	    category: Shower System
//	    price_range: Premium (2000-5000€)
func LoadCatalog(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var doc struct {
		Products []Product `yaml:"products"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, fmt.Errorf("no products defined in %s", path)
	}

	for i, p := range doc.Products {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %d: %w", i+1, err)
		}
	}
	return doc.Products, nil
}
