package classifier

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Overrides holds extra lexicon phrases loaded from a YAML file. Entries are
// merged over the built-in lexicons; they cannot remove built-in phrases.
type Overrides struct {
	Positive    []string `yaml:"positive"`
	Negative    []string `yaml:"negative"`
	Meeting     []string `yaml:"meeting"`
	Pricing     []string `yaml:"pricing"`
	Unsubscribe []string `yaml:"unsubscribe"`
}

// NewFromFile creates a classifier with the built-in lexicons extended by the
// YAML override file at path. An empty path returns the built-in classifier.
func NewFromFile(path string) (*Classifier, error) {
	if path == "" {
		return New(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lexicon overrides: %w", err)
	}

	var ov Overrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parse lexicon overrides: %w", err)
	}

	return fromTerms(
		append(append([]string{}, builtinPositive...), ov.Positive...),
		append(append([]string{}, builtinNegative...), ov.Negative...),
		append(append([]string{}, builtinMeeting...), ov.Meeting...),
		append(append([]string{}, builtinPricing...), ov.Pricing...),
		append(append([]string{}, builtinUnsubscribe...), ov.Unsubscribe...),
	), nil
}
