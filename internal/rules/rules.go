// Package rules loads grading rule sets from declarative YAML documents.
package rules

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/academy/internal/grading"
)

// SupportedMajor is the only rule document major version this build reads.
const SupportedMajor = "v1"

// Document is a parsed rule document.
type Document struct {
	Version  string       `yaml:"version"`
	RuleSets []RuleSetDoc `yaml:"rule_sets"`
}

// RuleSetDoc describes one rule set.
type RuleSetDoc struct {
	ID       string         `yaml:"id"`
	Title    string         `yaml:"title"`
	Criteria []CriterionDoc `yaml:"criteria"`
	Tiers    []TierDoc      `yaml:"tiers"`
}

// CriterionDoc describes one criterion.
type CriterionDoc struct {
	ID          string   `yaml:"id"`
	Description string   `yaml:"description"`
	Hint        string   `yaml:"hint"`
	Match       string   `yaml:"match"`
	Patterns    []string `yaml:"patterns"`
}

// TierDoc describes one tier table entry. A tier with When set is a
// special case; MinScore is ignored for it.
type TierDoc struct {
	ID       string   `yaml:"id"`
	Level    string   `yaml:"level"`
	MinScore int      `yaml:"min_score"`
	When     *WhenDoc `yaml:"when"`
	Message  string   `yaml:"message"`
}

// WhenDoc is the criteria combination that triggers a special case.
type WhenDoc struct {
	AllOf  []string `yaml:"all_of"`
	NoneOf []string `yaml:"none_of"`
}

// Parse validates data against the rule document schema, decodes it and
// checks the document version.
func Parse(data []byte) (*Document, error) {
	var generic any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("parse rule document: %w", err)
	}
	if generic == nil {
		return nil, errors.New("parse rule document: document is empty")
	}
	if err := validateDocument(generic); err != nil {
		return nil, err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode rule document: %w", err)
	}

	if !semver.IsValid(doc.Version) {
		return nil, fmt.Errorf("rule document version %q is not a valid semantic version", doc.Version)
	}
	if major := semver.Major(doc.Version); major != SupportedMajor {
		return nil, fmt.Errorf("rule document version %s is not supported (want %s.x.y)", doc.Version, SupportedMajor)
	}
	return &doc, nil
}

// Read is Parse over an io.Reader.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read rule document: %w", err)
	}
	return Parse(data)
}

// Definitions converts the document into engine definitions.
func (d *Document) Definitions() []grading.Definition {
	defs := make([]grading.Definition, 0, len(d.RuleSets))
	for _, rs := range d.RuleSets {
		defs = append(defs, rs.Definition())
	}
	return defs
}

// Definition converts a rule set entry into an engine definition.
func (s RuleSetDoc) Definition() grading.Definition {
	def := grading.Definition{
		ID:       s.ID,
		Title:    s.Title,
		Criteria: make([]grading.Criterion, 0, len(s.Criteria)),
		Tiers:    make([]grading.TierEntry, 0, len(s.Tiers)),
	}
	for _, c := range s.Criteria {
		def.Criteria = append(def.Criteria, grading.Criterion{
			ID:          c.ID,
			Description: c.Description,
			Hint:        c.Hint,
			Mode:        grading.MatchMode(c.Match),
			Patterns:    c.Patterns,
		})
	}
	for _, t := range s.Tiers {
		entry := grading.TierEntry{
			ID:       t.ID,
			Level:    grading.Level(t.Level),
			MinScore: t.MinScore,
			Message:  t.Message,
		}
		if t.When != nil {
			entry.When = &grading.SpecialCase{AllOf: t.When.AllOf, NoneOf: t.When.NoneOf}
		}
		def.Tiers = append(def.Tiers, entry)
	}
	return def
}

// Build validates every rule set in the document and returns an engine.
// All invalid rule sets are reported together.
func (d *Document) Build() (*grading.Engine, error) {
	var (
		sets []*grading.RuleSet
		errs []error
	)
	for _, def := range d.Definitions() {
		rs, err := grading.NewRuleSet(def)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		sets = append(sets, rs)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return grading.New(sets...)
}
