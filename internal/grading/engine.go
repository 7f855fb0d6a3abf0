package grading

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownRuleSet is returned when Evaluate is called with an ID that no
// rule set in the engine carries.
var ErrUnknownRuleSet = errors.New("unknown rule set")

// Engine grades submissions against a fixed collection of rule sets.
// It is immutable after construction and safe for concurrent use.
type Engine struct {
	sets  map[string]*RuleSet
	order []string
}

// New creates an engine over the given rule sets. Rule set IDs must be unique.
func New(sets ...*RuleSet) (*Engine, error) {
	e := &Engine{sets: make(map[string]*RuleSet, len(sets))}
	for i, rs := range sets {
		if rs == nil {
			return nil, fmt.Errorf("rule set %d is nil", i)
		}
		if _, dup := e.sets[rs.ID()]; dup {
			return nil, fmt.Errorf("duplicate rule set ID: %q", rs.ID())
		}
		e.sets[rs.ID()] = rs
		e.order = append(e.order, rs.ID())
	}
	return e, nil
}

// Evaluate grades rawSubmission with the rule set identified by ruleSetID.
// The only error is ErrUnknownRuleSet; every submission yields a verdict.
func (e *Engine) Evaluate(ruleSetID, rawSubmission string) (Verdict, error) {
	rs, ok := e.sets[ruleSetID]
	if !ok {
		return Verdict{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, ruleSetID)
	}
	return rs.Evaluate(rawSubmission), nil
}

// RuleSet returns the rule set with the given ID.
func (e *Engine) RuleSet(id string) (*RuleSet, bool) {
	rs, ok := e.sets[id]
	return rs, ok
}

// RuleSetIDs returns all rule set IDs in registration order.
func (e *Engine) RuleSetIDs() []string {
	return slices.Clone(e.order)
}

// RuleSets returns all rule sets in registration order.
func (e *Engine) RuleSets() []*RuleSet {
	out := make([]*RuleSet, 0, len(e.order))
	for _, id := range e.order {
		out = append(out, e.sets[id])
	}
	return out
}
