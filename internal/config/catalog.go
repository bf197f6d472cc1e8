package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog holds the marketplace vocabulary: site categories, gray niches
// requiring explicit opt-in, and traffic countries. Deployments can override
// the built-in lists with a YAML file.
type Catalog struct {
	Categories []string `yaml:"categories"`
	GrayNiches []string `yaml:"gray_niches"`
	Countries  []string `yaml:"countries"`
}

// DefaultCatalog returns the built-in marketplace vocabulary.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Categories: []string{
			"Business / Finance",
			"Technology",
			"Health / Fitness",
			"Lifestyle",
			"Travel",
			"Food / Drink",
			"Education",
			"Fashion / Beauty",
			"Sports",
			"Entertainment",
			"Home / Garden",
			"Parenting / Family",
			"Automotive",
			"Real Estate",
			"News / Media",
			"Other",
		},
		GrayNiches: []string{
			"Casino / Gambling",
			"CBD / Cannabis",
			"Adult",
			"Crypto / Forex",
			"Betting / Sportsbook",
		},
		Countries: []string{
			"United States", "United Kingdom", "Canada", "Australia", "Germany",
			"France", "India", "Pakistan", "Bangladesh", "Netherlands", "Spain",
			"Italy", "Brazil", "Japan", "South Korea", "Other",
		},
	}
}

// LoadCatalog loads the catalog from the configured YAML file, falling back
// to the built-in lists when the file doesn't exist. Lists present in the
// file replace the built-in ones; absent lists keep their defaults.
func LoadCatalog(path string) (*Catalog, error) {
	catalog := DefaultCatalog()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return catalog, nil
		}
		return nil, err
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, err
	}

	if len(file.Categories) > 0 {
		catalog.Categories = file.Categories
	}
	if len(file.GrayNiches) > 0 {
		catalog.GrayNiches = file.GrayNiches
	}
	if len(file.Countries) > 0 {
		catalog.Countries = file.Countries
	}

	return catalog, nil
}

// HasCategory reports whether the category is part of the catalog.
func (c *Catalog) HasCategory(category string) bool {
	return contains(c.Categories, category)
}

// HasGrayNiche reports whether the niche is part of the catalog.
func (c *Catalog) HasGrayNiche(niche string) bool {
	return contains(c.GrayNiches, niche)
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
