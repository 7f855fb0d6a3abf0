package grading

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cssDefinition mirrors the shape of a diagnosis rule set: a special case
// for the root cause plus score thresholds.
func cssDefinition() Definition {
	return Definition{
		ID:    "css",
		Title: "Hidden element",
		Criteria: []Criterion{
			AnyOf("css", "css", "stylesheet"),
			AnyOf("visibility", "visible", "hidden"),
			AllOf("display-none", "display", "none"),
			AnyOf("fix", "remove", "change"),
		},
		Tiers: []TierEntry{
			{ID: "root-cause", Level: LevelExcellent, When: &SpecialCase{AllOf: []string{"display-none"}}, Message: "Exactly right."},
			{ID: "thorough", Level: LevelGood, MinScore: 3, Message: "Good: {{.Score}}/{{.MaxScore}}."},
			{ID: "on-track", Level: LevelPartial, MinScore: 2, Message: "On the right track."},
			{ID: "needs-more", Level: LevelInsufficient, MinScore: 0, Message: "Look at the CSS."},
		},
	}
}

func TestNewRuleSet_Valid(t *testing.T) {
	rs, err := NewRuleSet(cssDefinition())
	require.NoError(t, err)
	assert.Equal(t, "css", rs.ID())
	assert.Equal(t, "Hidden element", rs.Title())
	assert.Equal(t, 4, rs.MaxScore())
	assert.Len(t, rs.Tiers(), 4)
}

func TestNewRuleSet_NormalizesPatterns(t *testing.T) {
	rs := MustRuleSet(Definition{
		ID:       "p",
		Criteria: []Criterion{AnyOf("a", "  Terminal   COMMAND ")},
		Tiers:    []TierEntry{{ID: "floor", Level: LevelInsufficient, Message: "x"}},
	})
	assert.Equal(t, []string{"terminal command"}, rs.Criteria()[0].Patterns)
	assert.Equal(t, MatchAny, rs.Criteria()[0].Mode)
}

func TestNewRuleSet_Rejects(t *testing.T) {
	floor := TierEntry{ID: "floor", Level: LevelInsufficient, MinScore: 0, Message: "try again"}

	tests := []struct {
		name    string
		mutate  func(*Definition)
		wantErr string
	}{
		{"empty ID", func(d *Definition) { d.ID = " " }, "rule set ID is empty"},
		{"no criteria", func(d *Definition) { d.Criteria = nil; d.Tiers = []TierEntry{floor} }, "no criteria"},
		{"duplicate criterion", func(d *Definition) {
			d.Criteria = append(d.Criteria, Contains("css", "x"))
		}, "duplicate criterion ID"},
		{"empty patterns", func(d *Definition) { d.Criteria[0].Patterns = nil }, "no patterns"},
		{"blank pattern", func(d *Definition) { d.Criteria[0].Patterns = []string{" \n "} }, "blank pattern"},
		{"unknown mode", func(d *Definition) { d.Criteria[0].Mode = "xor" }, "unknown match mode"},
		{"no tiers", func(d *Definition) { d.Tiers = nil }, "no tiers"},
		{"duplicate tier", func(d *Definition) { d.Tiers = append(d.Tiers, floor, floor) }, "duplicate tier ID"},
		{"unknown level", func(d *Definition) { d.Tiers[1].Level = "superb" }, "unknown level"},
		{"empty message", func(d *Definition) { d.Tiers[1].Message = "" }, "message is empty"},
		{"bad template", func(d *Definition) { d.Tiers[1].Message = "{{.Score" }, "parse message"},
		{"unknown template field", func(d *Definition) { d.Tiers[1].Message = "{{.Learner}}" }, "render message"},
		{"no floor", func(d *Definition) { d.Tiers = d.Tiers[:3] }, "MinScore <= 0"},
		{"unreachable", func(d *Definition) { d.Tiers[1].MinScore = 5 }, "unreachable"},
		{"unknown special criterion", func(d *Definition) {
			d.Tiers[0].When = &SpecialCase{AllOf: []string{"display-nope"}}
		}, "unknown criterion"},
		{"empty special case", func(d *Definition) { d.Tiers[0].When = &SpecialCase{} }, "no conditions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := cssDefinition()
			tt.mutate(&def)
			rs, err := NewRuleSet(def)
			require.Error(t, err)
			assert.Nil(t, rs)
			assert.True(t, errors.Is(err, ErrInvalidRuleSet))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRuleSet_ReportsAllProblems(t *testing.T) {
	def := cssDefinition()
	def.Criteria[0].Patterns = nil
	def.Tiers[1].Level = "superb"
	def.Tiers = def.Tiers[:3]

	_, err := NewRuleSet(def)
	require.Error(t, err)
	msg := err.Error()
	for _, want := range []string{"no patterns", "unknown level", "MinScore <= 0"} {
		assert.True(t, strings.Contains(msg, want), "error should mention %q, got: %v", want, msg)
	}
}

func TestMustRuleSet_Panics(t *testing.T) {
	assert.Panics(t, func() { MustRuleSet(Definition{}) })
}

func TestScore_EvaluatesEveryCriterion(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	sc := rs.Score(Normalize("The CSS sets display to none, so it is not visible. Remove it."))
	assert.Equal(t, 4, sc.Count)
	assert.Equal(t, []string{"css", "visibility", "display-none", "fix"}, sc.Satisfied)
	assert.Empty(t, sc.Unsatisfied)

	sc = rs.Score(Normalize("It is hidden"))
	assert.Equal(t, 1, sc.Count)
	assert.Equal(t, []string{"visibility"}, sc.Satisfied)
	assert.Equal(t, []string{"css", "display-none", "fix"}, sc.Unsatisfied)
}

func TestScore_Monotonic(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	steps := []string{
		"",
		"css",
		"css visible",
		"css visible display",
		"css visible display none",
		"css visible display none remove",
	}
	prev := -1
	for _, s := range steps {
		got := rs.Score(Normalize(s)).Count
		assert.GreaterOrEqual(t, got, prev, "score decreased when adding keywords: %q", s)
		prev = got
	}
}

func TestResolve_SpecialCaseBeatsScore(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	// Only the root cause is named; raw score of 1 would map to the floor.
	v := rs.Evaluate("display: none")
	assert.Equal(t, 1, v.Score)
	assert.Equal(t, "root-cause", v.TierID)
	assert.Equal(t, LevelExcellent, v.Level)
}

func TestResolve_Thresholds(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	tests := []struct {
		input    string
		wantTier string
	}{
		{"css hidden remove", "thorough"},
		{"css visible", "on-track"},
		{"stylesheet", "needs-more"},
		{"", "needs-more"},
	}
	for _, tt := range tests {
		v := rs.Evaluate(tt.input)
		assert.Equal(t, tt.wantTier, v.TierID, "input %q", tt.input)
	}
}

func TestResolve_SpecialCaseTableOrder(t *testing.T) {
	rs := MustRuleSet(Definition{
		ID: "order",
		Criteria: []Criterion{
			Contains("a", "alpha"),
			Contains("b", "beta"),
		},
		Tiers: []TierEntry{
			{ID: "first", Level: LevelGood, When: &SpecialCase{AllOf: []string{"a"}}, Message: "first"},
			{ID: "second", Level: LevelExcellent, When: &SpecialCase{AllOf: []string{"a", "b"}}, Message: "second"},
			{ID: "floor", Level: LevelInsufficient, Message: "floor"},
		},
	})

	v := rs.Evaluate("alpha beta")
	assert.Equal(t, "first", v.TierID, "first matching special case in table order must win")
}

func TestResolve_NoneOf(t *testing.T) {
	rs := MustRuleSet(Definition{
		ID: "div",
		Criteria: []Criterion{
			Contains("opens", "<div"),
			Contains("closes", "</div>"),
		},
		Tiers: []TierEntry{
			{ID: "missing-close", Level: LevelInsufficient, When: &SpecialCase{AllOf: []string{"opens"}, NoneOf: []string{"closes"}}, Message: "missing closing tag"},
			{ID: "ok", Level: LevelExcellent, MinScore: 2, Message: "ok"},
			{ID: "floor", Level: LevelInsufficient, MinScore: 0, Message: "floor"},
		},
	})

	assert.Equal(t, "missing-close", rs.Evaluate("<div>hello").TierID)
	assert.Equal(t, "ok", rs.Evaluate("<div>hello</div>").TierID)
	assert.Equal(t, "floor", rs.Evaluate("hello").TierID)
}

func TestResolve_EqualThresholdsKeepTableOrder(t *testing.T) {
	rs := MustRuleSet(Definition{
		ID:       "ties",
		Criteria: []Criterion{Contains("a", "a")},
		Tiers: []TierEntry{
			{ID: "floor", Level: LevelInsufficient, MinScore: 0, Message: "floor"},
			{ID: "also-floor", Level: LevelPartial, MinScore: 0, Message: "also"},
		},
	})
	assert.Equal(t, "floor", rs.Evaluate("zzz").TierID)
}

func TestResolve_NegativeFloor(t *testing.T) {
	rs := MustRuleSet(Definition{
		ID:       "neg",
		Criteria: []Criterion{Contains("a", "a")},
		Tiers: []TierEntry{
			{ID: "pass", Level: LevelExcellent, MinScore: 1, Message: "pass"},
			{ID: "floor", Level: LevelInsufficient, MinScore: -1, Message: "floor"},
		},
	})
	assert.Equal(t, "floor", rs.Evaluate("").TierID)
	assert.Equal(t, "pass", rs.Evaluate("a").TierID)
}

func TestEvaluate_RendersMessage(t *testing.T) {
	rs := MustRuleSet(cssDefinition())
	v := rs.Evaluate("CSS is hidden; change it")
	assert.Equal(t, "thorough", v.TierID)
	assert.Equal(t, "Good: 3/4.", v.Message)
	assert.Equal(t, 4, v.MaxScore)
	assert.Equal(t, "css", v.RuleSetID)
}

func TestEvaluate_EmptyAndLongInput(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	v := rs.Evaluate("")
	assert.Equal(t, LevelInsufficient, v.Level)
	assert.Equal(t, 0, v.Score)
	assert.NotNil(t, v.Satisfied)

	long := strings.Repeat("lorem ipsum ", 200_000) + "display none"
	v = rs.Evaluate(long)
	assert.Equal(t, "root-cause", v.TierID)
}

func TestAccessorsReturnCopies(t *testing.T) {
	rs := MustRuleSet(cssDefinition())

	crit := rs.Criteria()
	crit[0].Patterns[0] = "mutated"
	assert.Equal(t, "css", rs.Criteria()[0].Patterns[0])

	tiers := rs.Tiers()
	tiers[0].When.AllOf[0] = "mutated"
	assert.Equal(t, "display-none", rs.Tiers()[0].When.AllOf[0])
}

func TestHints(t *testing.T) {
	def := cssDefinition()
	def.Criteria[0].Hint = "Mention the CSS."
	def.Criteria[2].Hint = "Which display value hides things?"
	rs := MustRuleSet(def)

	assert.Equal(t,
		[]string{"Mention the CSS.", "Which display value hides things?"},
		rs.Hints([]string{"display-none", "css", "fix"}))
	assert.Empty(t, rs.Hints(nil))
}
