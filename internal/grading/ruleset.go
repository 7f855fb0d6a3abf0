package grading

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"text/template"
)

// ErrInvalidRuleSet is wrapped by every rule set construction failure.
var ErrInvalidRuleSet = errors.New("invalid rule set")

// Definition is the declarative description of one rule set.
type Definition struct {
	ID       string
	Title    string
	Criteria []Criterion
	Tiers    []TierEntry
}

// RuleSet is a validated, immutable criterion set with its tier table.
// It is safe for concurrent use.
type RuleSet struct {
	id        string
	title     string
	criteria  []Criterion
	tiers     []TierEntry
	templates []*template.Template

	// special holds tier indices of special-case entries in table order.
	special []int
	// thresholds holds tier indices of threshold entries by descending MinScore.
	thresholds []int
}

// Score is the outcome of running every criterion against normalized text.
type Score struct {
	Count       int
	Satisfied   []string
	Unsatisfied []string
}

// messageData is the template context for tier messages.
type messageData struct {
	Score    int
	MaxScore int
	RuleSet  string
}

// NewRuleSet validates def and builds a RuleSet. Every problem found is
// reported in a single error wrapping ErrInvalidRuleSet.
func NewRuleSet(def Definition) (*RuleSet, error) {
	var errs []string

	if strings.TrimSpace(def.ID) == "" {
		errs = append(errs, "rule set ID is empty")
	}

	criteria, cerrs := buildCriteria(def.Criteria)
	errs = append(errs, cerrs...)

	known := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		known[c.ID] = true
	}

	templates, terrs := buildTiers(def.Tiers, known, len(criteria))
	errs = append(errs, terrs...)

	if len(errs) > 0 {
		return nil, fmt.Errorf("%w %q:\n  %s", ErrInvalidRuleSet, def.ID, strings.Join(errs, "\n  "))
	}

	rs := &RuleSet{
		id:        def.ID,
		title:     def.Title,
		criteria:  criteria,
		tiers:     cloneTiers(def.Tiers),
		templates: templates,
	}
	for i, t := range rs.tiers {
		if t.IsSpecial() {
			rs.special = append(rs.special, i)
		} else {
			rs.thresholds = append(rs.thresholds, i)
		}
	}
	// Stable so equal thresholds keep table order.
	sort.SliceStable(rs.thresholds, func(a, b int) bool {
		return rs.tiers[rs.thresholds[a]].MinScore > rs.tiers[rs.thresholds[b]].MinScore
	})
	return rs, nil
}

// MustRuleSet is like NewRuleSet but panics on error. Intended for rule
// sets declared in code and tests.
func MustRuleSet(def Definition) *RuleSet {
	rs, err := NewRuleSet(def)
	if err != nil {
		panic(err)
	}
	return rs
}

func buildCriteria(in []Criterion) ([]Criterion, []string) {
	var errs []string
	if len(in) == 0 {
		errs = append(errs, "no criteria defined")
	}

	seen := make(map[string]bool, len(in))
	out := make([]Criterion, 0, len(in))
	for i, c := range in {
		prefix := fmt.Sprintf("criterion %d (%q)", i, c.ID)
		if strings.TrimSpace(c.ID) == "" {
			errs = append(errs, fmt.Sprintf("%s: ID is empty", prefix))
		} else if seen[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate criterion ID: %q", c.ID))
		}
		seen[c.ID] = true

		mode := c.Mode
		if mode == "" {
			mode = MatchAny
		}
		if mode != MatchAny && mode != MatchAll {
			errs = append(errs, fmt.Sprintf("%s: unknown match mode %q", prefix, c.Mode))
		}

		if len(c.Patterns) == 0 {
			errs = append(errs, fmt.Sprintf("%s: no patterns", prefix))
		}
		patterns := make([]string, 0, len(c.Patterns))
		for _, p := range c.Patterns {
			np := Normalize(p)
			if np == "" {
				errs = append(errs, fmt.Sprintf("%s: blank pattern", prefix))
				continue
			}
			patterns = append(patterns, np)
		}

		out = append(out, Criterion{
			ID:          c.ID,
			Description: c.Description,
			Hint:        c.Hint,
			Mode:        mode,
			Patterns:    patterns,
		})
	}
	return out, errs
}

func buildTiers(tiers []TierEntry, known map[string]bool, maxScore int) ([]*template.Template, []string) {
	var errs []string
	if len(tiers) == 0 {
		errs = append(errs, "no tiers defined")
	}

	seen := make(map[string]bool, len(tiers))
	hasFloor := false
	templates := make([]*template.Template, len(tiers))

	for i, t := range tiers {
		prefix := fmt.Sprintf("tier %d (%q)", i, t.ID)
		if strings.TrimSpace(t.ID) == "" {
			errs = append(errs, fmt.Sprintf("%s: ID is empty", prefix))
		} else if seen[t.ID] {
			errs = append(errs, fmt.Sprintf("duplicate tier ID: %q", t.ID))
		}
		seen[t.ID] = true

		if !t.Level.Valid() {
			errs = append(errs, fmt.Sprintf("%s: unknown level %q", prefix, t.Level))
		}

		if t.IsSpecial() {
			if len(t.When.AllOf) == 0 && len(t.When.NoneOf) == 0 {
				errs = append(errs, fmt.Sprintf("%s: special case has no conditions", prefix))
			}
			for _, id := range slices.Concat(t.When.AllOf, t.When.NoneOf) {
				if !known[id] {
					errs = append(errs, fmt.Sprintf("%s: special case references unknown criterion %q", prefix, id))
				}
			}
		} else {
			if t.MinScore <= 0 {
				hasFloor = true
			}
			if t.MinScore > maxScore {
				errs = append(errs, fmt.Sprintf("%s: MinScore %d is unreachable with %d criteria", prefix, t.MinScore, maxScore))
			}
		}

		if strings.TrimSpace(t.Message) == "" {
			errs = append(errs, fmt.Sprintf("%s: message is empty", prefix))
			continue
		}
		tmpl, err := template.New(t.ID).Option("missingkey=error").Parse(t.Message)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: parse message: %v", prefix, err))
			continue
		}
		// Trial render so unknown fields fail here instead of at evaluation.
		if err := tmpl.Execute(&bytes.Buffer{}, messageData{}); err != nil {
			errs = append(errs, fmt.Sprintf("%s: render message: %v", prefix, err))
			continue
		}
		templates[i] = tmpl
	}

	if len(tiers) > 0 && !hasFloor {
		errs = append(errs, "no threshold tier with MinScore <= 0; some inputs would be unresolved")
	}
	return templates, errs
}

// ID returns the rule set identifier.
func (rs *RuleSet) ID() string { return rs.id }

// Title returns the human-readable rule set title.
func (rs *RuleSet) Title() string { return rs.title }

// MaxScore returns the number of criteria.
func (rs *RuleSet) MaxScore() int { return len(rs.criteria) }

// Criteria returns a copy of the normalized criteria in declaration order.
func (rs *RuleSet) Criteria() []Criterion {
	out := make([]Criterion, len(rs.criteria))
	for i, c := range rs.criteria {
		c.Patterns = slices.Clone(c.Patterns)
		out[i] = c
	}
	return out
}

// Tiers returns a copy of the tier table in declaration order.
func (rs *RuleSet) Tiers() []TierEntry {
	return cloneTiers(rs.tiers)
}

// Score evaluates every criterion against already-normalized text.
// Criteria are independent; none short-circuits another.
func (rs *RuleSet) Score(normalized string) Score {
	sc := Score{
		Satisfied:   make([]string, 0, len(rs.criteria)),
		Unsatisfied: make([]string, 0, len(rs.criteria)),
	}
	for _, c := range rs.criteria {
		if c.Matches(normalized) {
			sc.Count++
			sc.Satisfied = append(sc.Satisfied, c.ID)
		} else {
			sc.Unsatisfied = append(sc.Unsatisfied, c.ID)
		}
	}
	return sc
}

// Resolve maps a score to a tier entry.
//
// Special-case entries are checked first in table order and win regardless
// of the numeric score. Otherwise the threshold entry with the highest
// MinScore not above sc.Count wins. If nothing matches, the lowest
// threshold entry is returned.
func (rs *RuleSet) Resolve(sc Score) TierEntry {
	return rs.tiers[rs.resolveIndex(sc)]
}

func (rs *RuleSet) resolveIndex(sc Score) int {
	satisfied := make(map[string]bool, len(sc.Satisfied))
	for _, id := range sc.Satisfied {
		satisfied[id] = true
	}
	for _, i := range rs.special {
		if rs.tiers[i].When.holds(satisfied) {
			return i
		}
	}
	for _, i := range rs.thresholds {
		if sc.Count >= rs.tiers[i].MinScore {
			return i
		}
	}
	return rs.thresholds[len(rs.thresholds)-1]
}

// Evaluate grades a raw submission. It never fails: empty or very long
// input still resolves to a tier.
func (rs *RuleSet) Evaluate(raw string) Verdict {
	sc := rs.Score(Normalize(raw))
	i := rs.resolveIndex(sc)
	tier := rs.tiers[i]

	return Verdict{
		RuleSetID:   rs.id,
		TierID:      tier.ID,
		Level:       tier.Level,
		Message:     rs.render(i, sc),
		Score:       sc.Count,
		MaxScore:    len(rs.criteria),
		Satisfied:   sc.Satisfied,
		Unsatisfied: sc.Unsatisfied,
	}
}

// Hints returns the hints of the given criteria, skipping empty ones.
func (rs *RuleSet) Hints(ids []string) []string {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var hints []string
	for _, c := range rs.criteria {
		if want[c.ID] && c.Hint != "" {
			hints = append(hints, c.Hint)
		}
	}
	return hints
}

func (rs *RuleSet) render(i int, sc Score) string {
	var buf bytes.Buffer
	err := rs.templates[i].Execute(&buf, messageData{
		Score:    sc.Count,
		MaxScore: len(rs.criteria),
		RuleSet:  rs.id,
	})
	if err != nil {
		// Templates were trial-rendered at construction.
		return rs.tiers[i].Message
	}
	return buf.String()
}

func cloneTiers(in []TierEntry) []TierEntry {
	out := make([]TierEntry, len(in))
	for i, t := range in {
		if t.When != nil {
			t.When = &SpecialCase{
				AllOf:  slices.Clone(t.When.AllOf),
				NoneOf: slices.Clone(t.When.NoneOf),
			}
		}
		out[i] = t
	}
	return out
}
