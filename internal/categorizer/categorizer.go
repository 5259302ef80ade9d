// Package categorizer assigns spending categories to transactions with
// rule-based keyword matching on the description. It is a deliberately dumb
// collaborator: deterministic, swappable, no model calls.
package categorizer

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/insightdelivered/statement-analyzer/internal/models"
)

// Uncategorized is returned when no rule matches a description.
const Uncategorized = "Uncategorized"

// rule is one category with its compiled keyword patterns. Rules are an
// ordered slice, not a map: the first matching category wins and that order
// must be stable.
type rule struct {
	category string
	patterns []*regexp.Regexp
}

// Categorizer maps transaction descriptions to category labels.
type Categorizer struct {
	rules []rule
}

// rulesFile is the YAML shape for overriding the built-in rules.
type rulesFile struct {
	Categories []struct {
		Name     string   `yaml:"name"`
		Keywords []string `yaml:"keywords"`
	} `yaml:"categories"`
}

// defaultRules cover the common spending buckets of personal statements.
var defaultRules = []struct {
	name     string
	keywords []string
}{
	{"Housing", []string{"rent", "mortgage", "housing", "property", "insurance", "hoa"}},
	{"Utilities", []string{"electricity", "water", "gas", "internet", "utility", "phone", "mobile", "garbage"}},
	{"Food & Dining", []string{"grocery", "supermarket", "restaurant", "cafe", "food", "dining", "uber eats", "doordash", "starbucks", "mcdonalds"}},
	{"Transportation", []string{"fuel", "gasoline", "uber", "lyft", "taxi", "train", "bus", "parking", "automotive", "toll"}},
	{"Entertainment", []string{"netflix", "spotify", "disney+", "hulu", "cinema", "movie", "game", "hobby", "concert", "theatre"}},
	{"Shopping", []string{"amazon", "walmart", "target", "ebay", "clothing", "electronics", "retail", "general"}},
	{"Healthcare", []string{"pharmacy", "medical", "doctor", "dentist", "health", "hospital", "clinic", "cvs", "walgreens"}},
	{"Income", []string{"salary", "payroll", "dividend", "interest", "tax refund", "venmo", "transfer in"}},
	{"Financial", []string{"bank fee", "interest charge", "tax", "investment", "brokerage", "atm"}},
}

// New returns a categorizer with the built-in rule set.
func New() *Categorizer {
	c := &Categorizer{}
	for _, r := range defaultRules {
		c.addRule(r.name, r.keywords)
	}
	return c
}

// NewFromFile loads categories and keywords from a YAML rules file, replacing
// the built-in set entirely.
func NewFromFile(path string) (*Categorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category rules: %w", err)
	}
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse category rules: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("category rules file %q defines no categories", path)
	}

	c := &Categorizer{}
	for _, cat := range f.Categories {
		c.addRule(cat.Name, cat.Keywords)
	}
	return c, nil
}

func (c *Categorizer) addRule(category string, keywords []string) {
	r := rule{category: category}
	for _, kw := range keywords {
		r.patterns = append(r.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(strings.ToLower(kw))+`\b`))
	}
	c.rules = append(c.rules, r)
}

// Categorize returns the category label for a description. Any mention of a
// transfer falls back to Financial before giving up.
func (c *Categorizer) Categorize(description string) string {
	desc := strings.ToLower(description)
	for _, r := range c.rules {
		for _, p := range r.patterns {
			if p.MatchString(desc) {
				return r.category
			}
		}
	}
	if strings.Contains(desc, "transfer") {
		return "Financial"
	}
	return Uncategorized
}

// Apply fills in the category of every transaction that does not have one
// yet. Existing categories are left alone.
func (c *Categorizer) Apply(txns []models.Transaction) {
	for i := range txns {
		if txns[i].Category == "" || txns[i].Category == Uncategorized {
			txns[i].Category = c.Categorize(txns[i].Description)
		}
	}
}
